package world

import "testing"

func TestModeMachineWaitsForPlayers(t *testing.T) {
	m := NewModeMachine()
	for i := 0; i < int(WaitingAutoStartCountdown)+5; i++ {
		if transitioned := m.Tick(false, false, false); transitioned {
			t.Fatal("must not transition while waiting for players")
		}
	}
	if m.Mode != ModeWaiting {
		t.Fatalf("expected still waiting, got %v", m.Mode)
	}
}

func TestModeMachineAutoStartsAndCycles(t *testing.T) {
	m := NewModeMachine()
	for i := 0; i < int(WaitingAutoStartCountdown); i++ {
		m.Tick(true, false, false)
	}
	if m.Mode != ModeStrategy {
		t.Fatalf("expected strategy after countdown, got %v", m.Mode)
	}
	for i := 0; i < int(StrategyDuration); i++ {
		m.Tick(true, false, false)
	}
	if m.Mode != ModePlay {
		t.Fatalf("expected play after strategy, got %v", m.Mode)
	}
	for i := 0; i < int(PlayDuration); i++ {
		m.Tick(true, false, false)
	}
	if m.Mode != ModeStrategy {
		t.Fatalf("expected cycle back to strategy, got %v", m.Mode)
	}
}

func TestModeMachineWinnerEndsMatch(t *testing.T) {
	m := NewModeMachine()
	m.Mode = ModePlay
	m.Countdown = PlayDuration
	if !m.Tick(true, true, false) {
		t.Fatal("winner declared must force a transition")
	}
	if m.Mode != ModeWaiting {
		t.Fatalf("expected waiting after winner, got %v", m.Mode)
	}
}

func TestModeMachineIOModeStaysInPlay(t *testing.T) {
	m := NewModeMachine()
	m.Mode = ModePlay
	m.IOMode = true
	m.Countdown = 0
	for i := 0; i < 100; i++ {
		if m.Tick(true, false, false) {
			t.Fatal("io mode must not cycle back to strategy")
		}
	}
	if m.Mode != ModePlay {
		t.Fatalf("expected to remain in play, got %v", m.Mode)
	}
}

func TestModeMachineForcePlayStaysInPlay(t *testing.T) {
	m := NewModeMachine()
	m.Mode = ModePlay
	m.Countdown = 0
	for i := 0; i < 100; i++ {
		if m.Tick(true, false, true) {
			t.Fatal("an all-RTF lobby must not cycle back to strategy")
		}
	}
	if m.Mode != ModePlay {
		t.Fatalf("expected to remain in play, got %v", m.Mode)
	}
}

func TestFlipAdvancesImmediately(t *testing.T) {
	m := NewModeMachine()
	m.Flip()
	if m.Mode != ModeWaiting {
		t.Fatalf("waiting must be a fixed point under flip, got %v", m.Mode)
	}
	m.ForceStart()
	if m.Mode != ModeStrategy {
		t.Fatalf("expected strategy after start, got %v", m.Mode)
	}
	m.Flip()
	if m.Mode != ModePlay {
		t.Fatalf("expected play after flip from strategy, got %v", m.Mode)
	}
	m.Flip()
	if m.Mode != ModeStrategy {
		t.Fatalf("expected strategy after flip from play, got %v", m.Mode)
	}
}

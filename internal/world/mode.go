package world

// Mode is the match lifecycle state machine (spec §4.5): the game cycles
// Waiting -> Strategy -> Play -> Strategy -> Play -> ... until a win
// condition ends the match and it resets to Waiting.
type Mode int

const (
	ModeWaiting Mode = iota
	ModeStrategy
	ModePlay
)

// WireByte is the Tick frame's mode encoding (spec §6): 0 = Play,
// 1 = Strategy, 2 = Waiting.
func (m Mode) WireByte() uint8 {
	switch m {
	case ModePlay:
		return 0
	case ModeStrategy:
		return 1
	default:
		return 2
	}
}

func (m Mode) String() string {
	switch m {
	case ModeWaiting:
		return "waiting"
	case ModeStrategy:
		return "strategy"
	case ModePlay:
		return "play"
	default:
		return "unknown"
	}
}

// Default stage durations, in ticks, per spec §4.5. Play is cut short
// whenever a win condition is detected. StrategyDuration/PlayDuration are
// vars rather than consts because the config file's strat_secs/play_secs
// (spec §6) override them once at startup, before any match begins.
var (
	WaitingAutoStartCountdown = Ticks(FPS * 15)
	StrategyDuration          = Ticks(FPS * 20)
	PlayDuration              = Ticks(FPS * 90)
)

// ModeMachine holds the mutable lifecycle state: current mode, a countdown
// to the next transition, and the io-mode flag that makes Play continuous
// instead of cycling back to Strategy.
type ModeMachine struct {
	Mode      Mode
	Countdown Ticks
	IOMode    bool

	// WaitingCountdown is the lobby countdown restored whenever the player
	// requirement lapses; the config file's autonomous timeout overrides the
	// default once at startup.
	WaitingCountdown Ticks
}

func NewModeMachine() *ModeMachine {
	return &ModeMachine{Mode: ModeWaiting, Countdown: WaitingAutoStartCountdown, WaitingCountdown: WaitingAutoStartCountdown}
}

// Tick advances the countdown by one tick and performs any transition that
// becomes due, reporting whether a transition happened this tick. forcePlay
// mirrors spec §4.5 step 2's "isnt_rtf == 0" rule: once every living
// player's castle has converted to RTF, Play no longer cycles back to
// Strategy on countdown expiry.
func (m *ModeMachine) Tick(enoughPlayers, winnerDeclared, forcePlay bool) bool {
	switch m.Mode {
	case ModeWaiting:
		if m.IOMode {
			// io-mode skips the lobby entirely (spec §4.5 step 1).
			m.transitionTo(ModeStrategy)
			return true
		}
		if !enoughPlayers {
			m.Countdown = m.WaitingCountdown
			return false
		}
		if m.Countdown > 0 {
			m.Countdown--
		}
		if m.Countdown > 0 {
			return false
		}
		m.transitionTo(ModeStrategy)
		return true
	case ModeStrategy:
		if m.Countdown > 0 {
			m.Countdown--
		}
		if m.Countdown > 0 {
			return false
		}
		m.transitionTo(ModePlay)
		return true
	case ModePlay:
		if winnerDeclared {
			m.transitionTo(ModeWaiting)
			return true
		}
		if m.IOMode || forcePlay {
			return false
		}
		if m.Countdown > 0 {
			m.Countdown--
		}
		if m.Countdown > 0 {
			return false
		}
		m.transitionTo(ModeStrategy)
		return true
	}
	return false
}

func (m *ModeMachine) transitionTo(next Mode) {
	m.Mode = next
	switch next {
	case ModeWaiting:
		m.Countdown = m.WaitingCountdown
	case ModeStrategy:
		m.Countdown = StrategyDuration
	case ModePlay:
		m.Countdown = PlayDuration
	}
}

// ForceStart skips straight to Strategy regardless of countdown, mirroring
// the admin console's "start" verb.
func (m *ModeMachine) ForceStart() {
	if m.Mode == ModeWaiting {
		m.transitionTo(ModeStrategy)
	}
}

// Flip advances immediately to the next stage, mirroring the console's
// "flip" verb. Waiting is a fixed point: only ForceStart (the "start"
// verb) leaves the lobby.
func (m *ModeMachine) Flip() {
	switch m.Mode {
	case ModeStrategy:
		m.transitionTo(ModePlay)
	case ModePlay:
		m.transitionTo(ModeStrategy)
	}
}

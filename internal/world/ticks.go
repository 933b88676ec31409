package world

import "time"

// FPS is the fixed simulation rate: 30 ticks per second (spec §4.5).
const FPS = 30

// TickPeriod is the wall-clock duration of one tick.
const TickPeriod = time.Second / FPS

// Ticks counts simulation steps. Unlike the teacher's 16-bit packed
// duration, this is a plain uint32 counter: matches are expected to run far
// longer than a 16-bit tick count would allow before it matters.
type Ticks uint32

func SecondsToTicks(seconds float32) Ticks {
	return Ticks(seconds * FPS)
}

func (t Ticks) Seconds() float32 {
	return float32(t) / FPS
}

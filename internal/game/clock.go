package game

import "time"

// Clock supplies the millisecond timestamps used for fire-rate cooldowns.
// Front-ends pass the same time base to Engine.Update.
type Clock interface {
	NowMillis() float64
}

type wallClock struct {
	start time.Time
}

// NewWallClock returns a monotonic clock counting milliseconds from its creation.
func NewWallClock() Clock {
	return wallClock{start: time.Now()}
}

func (c wallClock) NowMillis() float64 {
	return float64(time.Since(c.start).Microseconds()) / 1000
}

// ManualClock is a clock advanced explicitly. Headless runs and tests use it
// to step the simulation deterministically.
type ManualClock struct {
	ms float64
}

func (c *ManualClock) NowMillis() float64 { return c.ms }

// Set moves the clock to ms.
func (c *ManualClock) Set(ms float64) { c.ms = ms }

// Advance moves the clock forward by d milliseconds.
func (c *ManualClock) Advance(d float64) { c.ms += d }

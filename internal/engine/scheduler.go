package engine

import "time"

// Clock supplies the current time. Cooldown checks go through it so
// tests can drive time by hand.
type Clock interface {
	Now() time.Time
}

// Timer is a cancellation handle for a scheduled callback.
type Timer interface {
	// Stop cancels the timer. Returns false if it already fired.
	Stop() bool
}

// Scheduler schedules one-shot callbacks. The engine stores the
// returned handles so mode switches and resets can cancel pending
// countdown ticks and visual-clear callbacks deterministically.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

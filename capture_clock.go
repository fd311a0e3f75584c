// capture_clock.go - Injectable clock for the capture scheduler

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

import "time"

// Clock abstracts time for the capture and playback schedulers so the
// pipeline's timing behavior is testable with a synthetic clock. The
// elapsed-time-driven capture loop recomputes the expected frame index from
// Now() on every tick; it never counts timer firings, which is what keeps
// the loop drift-free under scheduler jitter.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// realClock is the production clock.
type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// NewRealClock returns the wall clock.
func NewRealClock() Clock {
	return realClock{}
}

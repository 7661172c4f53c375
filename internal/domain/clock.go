package domain

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests can freeze time via SetClock.
// The analyzer needs it because period dates carry no year and assume the
// current one; production code uses the real clock, tests inject a fake.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for analysis. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

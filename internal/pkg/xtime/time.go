package xtime

import "time"

// Now returns the current time in UTC. All persisted timestamps go through
// this function so rows compare consistently across database dialects.
func Now() time.Time {
	return nowFunc()
}

var nowFunc = func() time.Time {
	return time.Now().UTC()
}

// setNowFunc overrides the clock, for tests only.
func setNowFunc(f func() time.Time) {
	nowFunc = f
}

// resetNowFunc restores the real clock. Call in test cleanup.
func resetNowFunc() {
	nowFunc = func() time.Time {
		return time.Now().UTC()
	}
}

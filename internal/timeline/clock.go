// Package timeline derives display state from wall-clock time and the ordered
// activity sequence: the current activity, countdowns, the upcoming-start
// warning, and the trip progress percentage. Everything here is a pure
// function of (clock, activities) — no state, no side effects.
package timeline

import (
	"fmt"
	"time"
)

// Clock is a time of day expressed as seconds since local midnight.
// Activities carry no date and no timezone, so this is the only time
// representation the engine needs. There is no day-rollover handling: an
// activity whose end time numerically precedes its start only gets the
// 30-minute fallback window (known limitation).
type Clock int

const (
	// Minute and Hour are Clock spans, usable in arithmetic.
	Minute Clock = 60
	Hour   Clock = 3600

	// fallbackWindow is the assumed duration of an activity whose recorded
	// end does not exceed its start (zero/invalid duration). Used only for
	// "is it happening now" checks, never persisted.
	fallbackWindow = 30 * Minute

	// warnWithin is the lead time for the upcoming-activity warning.
	warnWithin = 10 * Minute
)

// ParseClock parses an "HH:MM" 24-hour time-of-day string.
// Malformed input degrades to midnight rather than failing: a half-filled
// form field must never take the timeline view down.
func ParseClock(s string) Clock {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0
	}
	return Clock(h)*Hour + Clock(m)*Minute
}

// At converts a wall-clock instant into a Clock in t's location.
func At(t time.Time) Clock {
	return Clock(t.Hour())*Hour + Clock(t.Minute())*Minute + Clock(t.Second())
}

// String formats the clock as "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/int(Hour), int(c)%int(Hour)/int(Minute))
}

// Countdown formats a non-negative span as "M:SS" — the per-activity
// remaining-time display.
func (c Clock) Countdown() string {
	if c < 0 {
		c = 0
	}
	return fmt.Sprintf("%d:%02d", int(c)/int(Minute), int(c)%int(Minute))
}

// LongCountdown formats a non-negative span as "H:MM:SS" when it spans at
// least an hour, else "M:SS" — the until-trip-end display.
func (c Clock) LongCountdown() string {
	if c < 0 {
		c = 0
	}
	if c >= Hour {
		return fmt.Sprintf("%d:%02d:%02d",
			int(c)/int(Hour), int(c)%int(Hour)/int(Minute), int(c)%int(Minute))
	}
	return c.Countdown()
}

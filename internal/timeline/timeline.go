package timeline

import (
	"github.com/HaruLab/travel-planning/internal/domain"
)

// Window is an activity's occupancy interval [Start, End) on the clock.
// End is the effective end: the recorded end when it exceeds the start,
// otherwise start + 30 minutes.
type Window struct {
	Start Clock
	End   Clock
}

// WindowOf computes the activity's window from its recorded times.
func WindowOf(a domain.Activity) Window {
	start := ParseClock(a.StartTime)
	end := ParseClock(a.EndTime)
	if end <= start {
		end = start + fallbackWindow
	}
	return Window{Start: start, End: end}
}

// Contains reports whether now falls inside the half-open window.
func (w Window) Contains(now Clock) bool {
	return now >= w.Start && now < w.End
}

// Current returns the index of the activity happening at now — the first
// activity in sequence order whose window contains now — or -1.
func Current(now Clock, acts []domain.Activity) int {
	for i, a := range acts {
		if WindowOf(a).Contains(now) {
			return i
		}
	}
	return -1
}

// Remaining returns the time left in the activity's window at now.
// Negative results are clamped to zero.
func Remaining(now Clock, a domain.Activity) Clock {
	left := WindowOf(a).End - now
	if left < 0 {
		left = 0
	}
	return left
}

// nextUpcoming returns the index of the first activity in sequence order
// whose start is strictly after now, or -1.
func nextUpcoming(now Clock, acts []domain.Activity) int {
	for i, a := range acts {
		if ParseClock(a.StartTime) > now {
			return i
		}
	}
	return -1
}

// Warning reports whether the traveller should be nudged: either the current
// activity has under 10 minutes left, or nothing is happening now and the
// next upcoming activity starts within 10 minutes.
func Warning(now Clock, acts []domain.Activity) bool {
	if cur := Current(now, acts); cur >= 0 {
		return Remaining(now, acts[cur]) < warnWithin
	}
	if next := nextUpcoming(now, acts); next >= 0 {
		return ParseClock(acts[next].StartTime)-now <= warnWithin
	}
	return false
}

// Progress returns the trip progress percentage (0–100) at now.
//
// The value is a step interpolation over sequence positions: an activity's
// own window sweeps the half-unit from index+0.5 to index+1, while the gap
// after it contributes at most 0.2 of an index unit. Active segments are
// deliberately weighted heavier than transit gaps, and the result is
// monotonically non-decreasing as now advances.
func Progress(now Clock, acts []domain.Activity) float64 {
	count := len(acts)
	if count == 0 {
		return 0
	}

	first := WindowOf(acts[0])
	last := WindowOf(acts[count-1])
	if now <= first.Start {
		return 0
	}
	if now >= last.End {
		return 100
	}

	if i := Current(now, acts); i >= 0 {
		w := WindowOf(acts[i])
		within := float64(now-w.Start) / float64(w.End-w.Start)
		return (float64(i) + 0.5 + 0.5*within) / float64(count) * 100
	}

	// In a gap: find the activity whose window just ended, with the next one
	// not yet started, and interpolate across the gap.
	for i := 0; i < count-1; i++ {
		w := WindowOf(acts[i])
		nextStart := WindowOf(acts[i+1]).Start
		if now >= w.End && now < nextStart {
			gap := float64(1) // degenerate gap guards against division by zero
			if nextStart > w.End {
				gap = float64(now-w.End) / float64(nextStart-w.End)
			}
			return (float64(i) + 1 + 0.2*gap) / float64(count) * 100
		}
	}

	// Manually-ordered sequences can leave now between windows in a way the
	// gap scan cannot place (times out of sequence order). Fall back to the
	// share of windows already finished.
	done := 0
	for _, a := range acts {
		if now >= WindowOf(a).End {
			done++
		}
	}
	return float64(done) / float64(count) * 100
}

// TotalRemaining returns the time from now until the last activity's
// effective end. ok is false once the trip is over (or there are no
// activities), meaning the countdown should not be shown at all.
func TotalRemaining(now Clock, acts []domain.Activity) (left Clock, ok bool) {
	if len(acts) == 0 {
		return 0, false
	}
	end := WindowOf(acts[len(acts)-1]).End
	if now >= end {
		return 0, false
	}
	return end - now, true
}

package domain

import "time"

// Window is the per-tick classification of an entry against "now".
// It is recomputed every tick and never persisted.
type Window int

const (
	WindowNone Window = iota
	Window30
	Window5
)

func (w Window) String() string {
	switch w {
	case Window30:
		return "30m"
	case Window5:
		return "5m"
	default:
		return "none"
	}
}

// Minutes returns the nominal minutes-before-start the window represents.
func (w Window) Minutes() int {
	switch w {
	case Window30:
		return 30
	case Window5:
		return 5
	default:
		return 0
	}
}

// Classify places startsAt into at most one notification window relative
// to now.
//
// The half-minute tolerance band exists because the driving tick is itself
// only 1-minute granular and must land inside the target minute exactly
// once: a hit at 30m means 29.5 <= minutes-until < 30.5, a hit at 5m means
// 4.5 <= minutes-until < 5.5. The two bands cannot both match.
func Classify(now, startsAt time.Time) Window {
	until := startsAt.Sub(now).Minutes()
	switch {
	case until >= 29.5 && until < 30.5:
		return Window30
	case until >= 4.5 && until < 5.5:
		return Window5
	default:
		return WindowNone
	}
}

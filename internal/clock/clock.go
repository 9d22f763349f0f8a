// Package clock pins "now" to the institution's civil time zone.
//
// Lecture times are stored and compared as civil wall-clock values, so every
// component that reasons about time must read it through a Clock rather than
// calling time.Now directly. This also keeps the reminder logic testable.
package clock

import "time"

// Clock supplies the current instant, already converted to a fixed location.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type zoneClock struct {
	loc *time.Location
}

// InZone returns a system clock whose Now is always expressed in loc.
func InZone(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return zoneClock{loc: loc}
}

func (c zoneClock) Now() time.Time { return time.Now().In(c.loc) }
func (c zoneClock) Location() *time.Location { return c.loc }

type fixedClock struct {
	t time.Time
}

// Fixed returns a clock frozen at t. Test helper.
func Fixed(t time.Time) Clock { return fixedClock{t: t} }

func (c fixedClock) Now() time.Time { return c.t }
func (c fixedClock) Location() *time.Location { return c.t.Location() }

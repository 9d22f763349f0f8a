// Package domain holds the core timetable model and the pure reminder
// logic (window classification, message rendering). Nothing in here does
// I/O; the store and reminder packages drive it.
package domain

import "time"

// TimetableEntry is one scheduled lecture occurrence.
//
// Department and Level are derived from the linked course when the entry is
// loaded; an entry whose course linkage is broken has them zeroed and is
// skipped by the reminder pass.
type TimetableEntry struct {
	ID           int64
	Label        string
	CourseID     int64
	CourseName   string
	DepartmentID int64
	Level        int
	RoomName     string // empty when no room is assigned
	Recurring    bool
	StartsAt     time.Time // civil-zone instant (date + time_start)
	EndsAt       time.Time
	CreatedBy    int64
}

// Incomplete reports whether the entry is missing the course linkage the
// recipient resolver needs.
func (e TimetableEntry) Incomplete() bool {
	return e.DepartmentID == 0 || e.Level == 0
}

// Package store is the persistence layer behind the reminder core.
//
// It exposes typed repositories per entity instead of a generic
// object-to-SQL mapper, so every query the core runs is a named method
// with typed arguments.
package store

import (
	"context"
	"time"

	"classbell/internal/domain"
)

// TimetableRepo serves the scheduler's bounded scan and the recurrence
// roll-forward job.
type TimetableRepo interface {
	// StartingBetween returns entries dated on day whose start time falls
	// within [from, to] inclusive, joined to their course and room.
	StartingBetween(ctx context.Context, day, from, to time.Time) ([]domain.TimetableEntry, error)
	// RollForwardRecurring advances every recurring entry dated on day by
	// exactly 7 days in one bulk statement and reports the affected count.
	RollForwardRecurring(ctx context.Context, day time.Time) (int64, error)
}

// UserRepo serves the recipient resolver. All three queries filter
// status = ACTIVE in SQL; token filtering and deduplication are the
// resolver's concern.
type UserRepo interface {
	ActiveStudents(ctx context.Context, departmentID int64, level int) ([]domain.User, error)
	ActiveLecturers(ctx context.Context, departmentID int64) ([]domain.User, error)
	ActiveCarryOver(ctx context.Context, courseID int64) ([]domain.User, error)
}

// Store bundles the repositories over one database handle.
type Store interface {
	Timetables() TimetableRepo
	Users() UserRepo
	Close() error
}

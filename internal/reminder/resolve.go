package reminder

import (
	"context"
	"fmt"

	"classbell/internal/domain"
)

// resolve computes the deduplicated audience for one entry: students of
// the entry's department and level, lecturers of the department (every
// level), and carry-over registrants of the course regardless of either.
// Candidates without a push token are silently excluded; a user matched
// by more than one rule is returned once.
func (s *Service) resolve(ctx context.Context, e domain.TimetableEntry) ([]domain.User, error) {
	students, err := s.users.ActiveStudents(ctx, e.DepartmentID, e.Level)
	if err != nil {
		return nil, fmt.Errorf("students: %w", err)
	}
	lecturers, err := s.users.ActiveLecturers(ctx, e.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("lecturers: %w", err)
	}
	carryOver, err := s.users.ActiveCarryOver(ctx, e.CourseID)
	if err != nil {
		return nil, fmt.Errorf("carry-over: %w", err)
	}

	seen := make(map[int64]struct{}, len(students)+len(lecturers)+len(carryOver))
	var out []domain.User
	for _, group := range [][]domain.User{students, lecturers, carryOver} {
		for _, u := range group {
			if !u.Notifiable() {
				continue
			}
			if _, dup := seen[u.ID]; dup {
				continue
			}
			seen[u.ID] = struct{}{}
			out = append(out, u)
		}
	}
	return out, nil
}

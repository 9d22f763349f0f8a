package reminder

import (
	"context"
	"errors"
	"testing"

	"classbell/internal/domain"
)

func TestResolveDedup(t *testing.T) {
	t.Parallel()

	// Ada is matched both as a department/level student and as a carry-over
	// registrant for the same course; she must resolve exactly once.
	ada := activeUser(1, domain.RoleStudent, 5, 200, "T-ada")
	fs := &fakeStore{
		students:  map[[2]int64][]domain.User{{5, 200}: {ada}},
		carryOver: map[int64][]domain.User{77: {ada}},
	}
	s := newTestService(fs, &fakeSender{}, nil)

	got, err := s.resolve(context.Background(), domain.TimetableEntry{CourseID: 77, DepartmentID: 5, Level: 200})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("resolved %v, want exactly one entry for user 1", got)
	}
}

func TestResolveExcludesTokenless(t *testing.T) {
	t.Parallel()

	fs := &fakeStore{
		students: map[[2]int64][]domain.User{{5, 200}: {
			activeUser(1, domain.RoleStudent, 5, 200, "T1"),
			activeUser(2, domain.RoleStudent, 5, 200, ""), // no token, silently excluded
		}},
	}
	s := newTestService(fs, &fakeSender{}, nil)

	got, err := s.resolve(context.Background(), domain.TimetableEntry{CourseID: 77, DepartmentID: 5, Level: 200})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(got) != 1 || got[0].PushToken != "T1" {
		t.Fatalf("resolved %v, want only T1", got)
	}
}

func TestResolveUnionOfGroups(t *testing.T) {
	t.Parallel()

	fs := &fakeStore{
		students: map[[2]int64][]domain.User{{5, 200}: {
			activeUser(1, domain.RoleStudent, 5, 200, "T1"),
		}},
		lecturers: map[int64][]domain.User{5: {
			activeUser(2, domain.RoleLecturer, 5, 0, "T4"),
		}},
		carryOver: map[int64][]domain.User{77: {
			activeUser(3, domain.RoleStudent, 9, 300, "T5"),
		}},
	}
	s := newTestService(fs, &fakeSender{}, nil)

	got, err := s.resolve(context.Background(), domain.TimetableEntry{CourseID: 77, DepartmentID: 5, Level: 200})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("resolved %d users, want 3", len(got))
	}
}

func TestResolvePropagatesStoreError(t *testing.T) {
	t.Parallel()

	fs := &fakeStore{userErr: errors.New("store down")}
	s := newTestService(fs, &fakeSender{}, nil)

	if _, err := s.resolve(context.Background(), domain.TimetableEntry{CourseID: 1, DepartmentID: 1, Level: 100}); err == nil {
		t.Fatal("expected error when the store is unavailable")
	}
}

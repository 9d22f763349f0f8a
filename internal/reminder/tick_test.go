package reminder

import (
	"errors"
	"sort"
	"testing"

	"classbell/internal/clock"
	"classbell/internal/domain"
)

// Scenario from the product behavior: entry in department 5, level 200,
// starting 10:00 today. Three students in the cohort (tokens T1, T2 and
// one without a token), one lecturer in the department (T4), one
// carry-over student from another department (T5).
func scenarioStore() *fakeStore {
	return &fakeStore{
		entries: []domain.TimetableEntry{{
			ID:           1,
			Label:        "THM-201",
			CourseID:     77,
			CourseName:   "Thermodynamics II",
			DepartmentID: 5,
			Level:        200,
			RoomName:     "ENG Hall B",
			StartsAt:     at(10, 0),
		}},
		students: map[[2]int64][]domain.User{{5, 200}: {
			activeUser(1, domain.RoleStudent, 5, 200, "T1"),
			activeUser(2, domain.RoleStudent, 5, 200, "T2"),
			activeUser(3, domain.RoleStudent, 5, 200, ""),
		}},
		lecturers: map[int64][]domain.User{5: {
			activeUser(4, domain.RoleLecturer, 5, 0, "T4"),
		}},
		carryOver: map[int64][]domain.User{77: {
			activeUser(5, domain.RoleStudent, 9, 300, "T5"),
		}},
	}
}

func TestPassThirtyMinutesBefore(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	s := newTestService(scenarioStore(), sender, clock.Fixed(at(9, 30)))
	s.runPass()

	got := sender.tokens()
	sort.Strings(got)
	want := []string{"T1", "T2", "T4", "T5"}
	if len(got) != len(want) {
		t.Fatalf("sent to %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sent to %v, want %v", got, want)
		}
	}
}

func TestPassOutsideBands(t *testing.T) {
	t.Parallel()

	// 31 minutes before start: the entry is inside the scan window but
	// outside both tolerance bands; nothing may be dispatched.
	sender := &fakeSender{}
	s := newTestService(scenarioStore(), sender, clock.Fixed(at(9, 29)))
	s.runPass()

	if got := sender.tokens(); len(got) != 0 {
		t.Fatalf("sent to %v, want no sends at 31 minutes before", got)
	}
}

func TestPassFiveMinutesBefore(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	s := newTestService(scenarioStore(), sender, clock.Fixed(at(9, 55)))
	s.runPass()

	if got := sender.tokens(); len(got) != 4 {
		t.Fatalf("sent to %v, want the same 4 tokens as the 30m window", got)
	}
}

func TestPassSkipsTickOnScanError(t *testing.T) {
	t.Parallel()

	fs := scenarioStore()
	fs.scanErr = errors.New("store unavailable")
	sender := &fakeSender{}
	s := newTestService(fs, sender, clock.Fixed(at(9, 30)))
	s.runPass()

	if got := sender.tokens(); len(got) != 0 {
		t.Fatalf("sent to %v, want none when the scan fails", got)
	}
}

func TestPassSkipsIncompleteEntry(t *testing.T) {
	t.Parallel()

	fs := scenarioStore()
	broken := fs.entries[0]
	broken.ID = 2
	broken.DepartmentID = 0 // broken course linkage
	fs.entries = []domain.TimetableEntry{broken}

	sender := &fakeSender{}
	s := newTestService(fs, sender, clock.Fixed(at(9, 30)))
	s.runPass()

	if got := sender.tokens(); len(got) != 0 {
		t.Fatalf("sent to %v, want none for an incomplete entry", got)
	}
}

func TestPassResolverFailureDoesNotStopOtherEntries(t *testing.T) {
	t.Parallel()

	// Two entries hit the 30m band; the first one's course has no
	// department (skipped with a warning), the second dispatches normally.
	fs := scenarioStore()
	broken := fs.entries[0]
	broken.ID = 2
	broken.CourseID = 88
	broken.DepartmentID = 0
	fs.entries = append([]domain.TimetableEntry{broken}, fs.entries...)

	sender := &fakeSender{}
	s := newTestService(fs, sender, clock.Fixed(at(9, 30)))
	s.runPass()

	if got := sender.tokens(); len(got) != 4 {
		t.Fatalf("sent to %v, want the healthy entry's 4 recipients", got)
	}
}

func TestRollForwardLogsOnlyOnError(t *testing.T) {
	t.Parallel()

	fs := scenarioStore()
	fs.rollErr = errors.New("store unavailable")
	s := newTestService(fs, &fakeSender{}, clock.Fixed(at(0, 0)))

	// Must not panic; the job retries on the next midnight run.
	s.runRollForward()
}

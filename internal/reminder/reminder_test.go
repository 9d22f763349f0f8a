package reminder

import (
	"context"
	"errors"
	"sync"
	"time"

	"classbell/internal/clock"
	"classbell/internal/domain"
	"classbell/pkg/logx"
)

// Shared fakes for the package tests.

var lagos = time.FixedZone("WAT", 3600)

func at(h, m int) time.Time {
	return time.Date(2026, 3, 2, h, m, 0, 0, lagos)
}

type fakeStore struct {
	entries []domain.TimetableEntry
	scanErr error

	students  map[[2]int64][]domain.User // key: department, level
	lecturers map[int64][]domain.User
	carryOver map[int64][]domain.User
	userErr   error

	rolled  int64
	rollErr error
}

type fakeTimetables fakeStore

func (f *fakeTimetables) StartingBetween(_ context.Context, _, from, to time.Time) ([]domain.TimetableEntry, error) {
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	var out []domain.TimetableEntry
	for _, e := range f.entries {
		if !e.StartsAt.Before(from) && !e.StartsAt.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeTimetables) RollForwardRecurring(_ context.Context, _ time.Time) (int64, error) {
	if f.rollErr != nil {
		return 0, f.rollErr
	}
	return f.rolled, nil
}

type fakeUsers fakeStore

func (f *fakeUsers) ActiveStudents(_ context.Context, dept int64, level int) ([]domain.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return f.students[[2]int64{dept, int64(level)}], nil
}

func (f *fakeUsers) ActiveLecturers(_ context.Context, dept int64) ([]domain.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return f.lecturers[dept], nil
}

func (f *fakeUsers) ActiveCarryOver(_ context.Context, courseID int64) ([]domain.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return f.carryOver[courseID], nil
}

// fakeSender records every send; tokens in failTokens return an error.
type fakeSender struct {
	mu         sync.Mutex
	sent       []string
	failTokens map[string]bool
}

func (f *fakeSender) Send(_ context.Context, token, _, _ string) error {
	f.mu.Lock()
	f.sent = append(f.sent, token)
	fail := f.failTokens[token]
	f.mu.Unlock()
	if fail {
		return errors.New("transport rejected token")
	}
	return nil
}

func (f *fakeSender) tokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]string(nil), f.sent...)
	return out
}

func newTestService(fs *fakeStore, sender *fakeSender, clk clock.Clock) *Service {
	s := &Service{
		clk:        clk,
		timetables: (*fakeTimetables)(fs),
		users:      (*fakeUsers)(fs),
		sender:     sender,
		log:        logx.Nop(),
	}
	s.applyLocked(Config{Enabled: true, Workers: 3, RatePerSec: 1000})
	return s
}

func activeUser(id int64, role domain.Role, dept int64, level int, token string) domain.User {
	return domain.User{
		ID:           id,
		Role:         role,
		DepartmentID: dept,
		Level:        level,
		Status:       domain.StatusActive,
		PushToken:    token,
	}
}

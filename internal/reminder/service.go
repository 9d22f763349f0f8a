// Package reminder is the scheduling core: a 1-minute pass that scans
// today's near-future timetable entries, classifies each against the
// 30- and 5-minute notification windows, resolves who is entitled to a
// reminder and pushes it out, plus the once-daily job that rolls
// recurring entries forward by a week.
package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"

	"classbell/internal/clock"
	"classbell/internal/push"
	"classbell/internal/store"
	"classbell/pkg/logx"
)

const (
	// tickSpec drives the reminder pass once per wall-clock minute.
	tickSpec = "* * * * *"
	// rollSpec runs the recurrence roll-forward at civil midnight.
	rollSpec = "0 0 * * *"
	// scanWindow bounds the per-tick query; nothing past it can classify.
	scanWindow = 30 * time.Minute
)

type Config struct {
	Enabled    bool
	Workers    int
	RatePerSec int
}

type Service struct {
	mu  sync.Mutex
	cfg Config

	clk        clock.Clock
	timetables store.TimetableRepo
	users      store.UserRepo
	sender     push.Sender
	log        logx.Logger

	limiter *rate.Limiter
	c       *cron.Cron
}

func New(cfg Config, clk clock.Clock, st store.Store, sender push.Sender, log logx.Logger) *Service {
	if log.IsZero() {
		log = logx.Nop()
	}
	s := &Service{
		clk:        clk,
		timetables: st.Timetables(),
		users:      st.Users(),
		sender:     sender,
		log:        log,
	}
	s.applyLocked(cfg)
	return s
}

// Apply updates the tunable knobs (workers, send rate) at runtime.
func (s *Service) Apply(cfg Config) {
	s.mu.Lock()
	s.applyLocked(cfg)
	s.mu.Unlock()
}

func (s *Service) applyLocked(cfg Config) {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 10
	}
	s.cfg = cfg
	// Token bucket: burst = rate per sec, so short spikes don't block too hard.
	s.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.RatePerSec)
}

// Start registers both jobs and starts cron triggering. A pass that
// overruns its minute is skipped, never run concurrently with itself.
func (s *Service) Start(ctx context.Context) {
	_ = ctx // reserved; passes are not cancelled mid-tick

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c != nil {
		return
	}
	if !s.cfg.Enabled {
		s.log.Info("reminder disabled; not starting")
		return
	}

	loc := s.clk.Location()
	cl := cronLog{log: s.log}
	s.c = cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	_, _ = s.c.AddFunc(tickSpec, s.runPass)
	_, _ = s.c.AddFunc(rollSpec, s.runRollForward)
	s.c.Start()
	s.log.Info("service started", logx.String("tz", loc.String()), logx.Int("workers", s.cfg.Workers))
}

// Stop stops cron triggering and waits for a running pass to finish
// (bounded by ctx).
func (s *Service) Stop(ctx context.Context) {
	start := time.Now()

	s.mu.Lock()
	c := s.c
	s.c = nil
	s.mu.Unlock()
	if c == nil {
		return
	}

	select {
	case <-c.Stop().Done():
	case <-ctx.Done():
		// best-effort; in-flight sends may be abandoned
	}
	s.log.Info("service stopped", logx.Duration("took", time.Since(start)))
}

func (s *Service) snapshot() (Config, *rate.Limiter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg, s.limiter
}

// cronLog adapts logx to cron's logger interface.
type cronLog struct {
	log logx.Logger
}

func (c cronLog) Info(msg string, kv ...interface{}) {
	c.log.Debug(msg, logx.Any("detail", kv))
}

func (c cronLog) Error(err error, msg string, kv ...interface{}) {
	c.log.Error(msg, logx.Err(err), logx.Any("detail", kv))
}

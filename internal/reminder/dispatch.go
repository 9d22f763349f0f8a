package reminder

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"classbell/internal/domain"
	"classbell/pkg/logx"
)

// Result is the outcome of one send attempt.
type Result struct {
	UserID int64
	Token  string
	Err    error
}

// Report aggregates one dispatch batch for logging and tests. Failed
// sends are not retried within the tick; the entry will not classify
// into the same window again, so delivery is best-effort per window.
type Report struct {
	Batch     string
	Attempted int
	Sent      int
	Failed    int
	Failures  []Result
}

// dispatch fans the recipient set over a bounded worker pool and sends
// the same message to each. A failure for one recipient never blocks the
// others; the shared rate limiter caps the overall send rate.
func (s *Service) dispatch(ctx context.Context, recipients []domain.User, msg domain.Message) Report {
	cfg, lim := s.snapshot()

	rep := Report{Batch: uuid.NewString(), Attempted: len(recipients)}
	workers := cfg.Workers
	if workers > len(recipients) {
		workers = len(recipients)
	}

	var (
		repMu sync.Mutex
		wg    sync.WaitGroup
	)
	jobs := make(chan domain.User)

	record := func(u domain.User, err error) {
		repMu.Lock()
		defer repMu.Unlock()
		if err != nil {
			rep.Failed++
			rep.Failures = append(rep.Failures, Result{UserID: u.ID, Token: u.PushToken, Err: err})
			return
		}
		rep.Sent++
	}

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for u := range jobs {
				if lim != nil {
					if err := lim.Wait(ctx); err != nil {
						record(u, err)
						continue
					}
				}
				err := s.sender.Send(ctx, u.PushToken, msg.Title, msg.Body)
				if err != nil {
					s.log.Warn("push send failed",
						logx.String("batch", rep.Batch), logx.Int64("user", u.ID), logx.Err(err))
				}
				record(u, err)
			}
		}()
	}

	for _, u := range recipients {
		jobs <- u
	}
	close(jobs)
	wg.Wait()

	return rep
}

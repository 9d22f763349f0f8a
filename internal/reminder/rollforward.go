package reminder

import (
	"context"

	"classbell/pkg/logx"
)

// runRollForward advances every recurring entry dated today by exactly
// one week, in a single bulk statement. The WHERE date = today guard is
// what makes a second same-day run a no-op: after the first run no
// recurring row is dated today anymore.
//
// On failure nothing is written; the next midnight run retries, at the
// cost of that day's occurrence staying out of the scan window.
func (s *Service) runRollForward() {
	now := s.clk.Now()

	affected, err := s.timetables.RollForwardRecurring(context.Background(), now)
	if err != nil {
		s.log.Error("recurrence roll-forward failed", logx.Err(err))
		return
	}
	s.log.Info("recurring entries rolled forward",
		logx.Time("day", now), logx.Int64("affected", affected))
}

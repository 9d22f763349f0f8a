package reminder

import (
	"context"

	"classbell/internal/domain"
	"classbell/pkg/logx"
)

// runPass is one reminder tick. The scan window is recomputed from the
// clock every time; no state is carried between ticks, so a failed tick
// is naturally retried a minute later.
//
// Note this makes delivery at-least-once across delayed or skipped ticks:
// if a pass lands twice inside the same tolerance band (stalled process,
// clock step), the entry fires twice. There is deliberately no dedup
// record; see DESIGN.md.
func (s *Service) runPass() {
	ctx := context.Background()
	now := s.clk.Now()

	entries, err := s.timetables.StartingBetween(ctx, now, now, now.Add(scanWindow))
	if err != nil {
		s.log.Error("timetable scan failed; skipping tick", logx.Err(err))
		return
	}
	if len(entries) == 0 {
		return
	}
	s.log.Debug("tick", logx.Time("now", now), logx.Int("entries", len(entries)))

	for _, e := range entries {
		w := domain.Classify(now, e.StartsAt)
		if w == domain.WindowNone {
			continue
		}
		if e.Incomplete() {
			s.log.Warn("skipping entry with missing department or level",
				logx.Int64("entry", e.ID), logx.String("label", e.Label))
			continue
		}
		// One entry's failure must not starve the rest of the tick.
		s.remind(ctx, e, w)
	}
}

func (s *Service) remind(ctx context.Context, e domain.TimetableEntry, w domain.Window) {
	recipients, err := s.resolve(ctx, e)
	if err != nil {
		s.log.Error("recipient resolution failed",
			logx.Int64("entry", e.ID), logx.String("window", w.String()), logx.Err(err))
		return
	}
	if len(recipients) == 0 {
		s.log.Info("no notifiable recipients", logx.Int64("entry", e.ID), logx.String("window", w.String()))
		return
	}

	msg := domain.RenderReminder(e, w)
	rep := s.dispatch(ctx, recipients, msg)

	fields := []logx.Field{
		logx.String("batch", rep.Batch),
		logx.Int64("entry", e.ID),
		logx.String("course", e.CourseName),
		logx.String("window", w.String()),
		logx.Int("attempted", rep.Attempted),
		logx.Int("sent", rep.Sent),
		logx.Int("failed", rep.Failed),
	}
	if rep.Failed > 0 {
		s.log.Warn("reminder dispatched with failures", fields...)
	} else {
		s.log.Info("reminder dispatched", fields...)
	}
}

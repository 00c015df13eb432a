package timesheet

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/julianstephens/punchclock/internal/constants"
)

// ClockPeriod clocks each day in turn. It stops at the first day that
// returns an error, or before the next day once ctx is cancelled, and hands
// back the summary of the days processed so far.
func (s *Submitter) ClockPeriod(ctx context.Context, days iter.Seq[time.Time]) (Summary, error) {
	var summary Summary
	for date := range days {
		if err := ctx.Err(); err != nil {
			s.log.Warn("run cancelled", "next", date.Format(constants.DateFormat), "processed", summary.Days())
			return summary, fmt.Errorf("%w before %s: %w", ErrSubmitAborted, date.Format(constants.DateFormat), err)
		}
		s.reporter.Begin(date)
		outcome, err := s.ClockDay(ctx, date)
		summary.add(outcome)
		s.reporter.Done(date, outcome)
		if err != nil {
			s.log.Error("run aborted", "date", date.Format(constants.DateFormat), "processed", summary.Days(), "error", err)
			return summary, err
		}
	}
	s.log.Info("run finished",
		"days", summary.Days(),
		"submitted", summary.Count(Submitted),
		"failed", summary.Count(Failed))
	return summary, nil
}

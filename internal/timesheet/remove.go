package timesheet

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/julianstephens/punchclock/internal/constants"
)

// RemovalOutcome describes a bulk removal.
type RemovalOutcome struct {
	// IDs are the entries found in the range.
	IDs     []int
	Removed int
	// Failed is set when the delete call got a reply other than 204.
	Failed     bool
	StatusCode int
	Body       string
}

// RemoveEntries deletes every timesheet entry between from and to in a
// single call. Nothing is sent when the range is already empty. Unlike the
// day checks, a failed lookup is returned as an error rather than guessed at.
func (s *Submitter) RemoveEntries(ctx context.Context, from, to time.Time) (RemovalOutcome, error) {
	fromStr, toStr := from.Format(constants.DateFormat), to.Format(constants.DateFormat)

	entries, err := s.api.TimesheetEntries(ctx, from, to)
	if err != nil {
		return RemovalOutcome{}, fmt.Errorf("list entries %s to %s: %w", fromStr, toStr, err)
	}

	out := RemovalOutcome{IDs: make([]int, 0, len(entries))}
	for _, e := range entries {
		out.IDs = append(out.IDs, e.ID)
	}
	if len(out.IDs) == 0 {
		s.log.Info("nothing to remove", "from", fromStr, "to", toStr)
		return out, nil
	}

	resp, err := s.api.DeleteClockEntries(ctx, out.IDs)
	if err != nil {
		return out, fmt.Errorf("delete %d entries: %w", len(out.IDs), err)
	}

	out.StatusCode = resp.StatusCode
	if resp.StatusCode != http.StatusNoContent {
		out.Failed = true
		out.Body = strings.TrimSpace(string(resp.Body))
		s.log.Error("removal rejected", "from", fromStr, "to", toStr, "status", resp.StatusCode, "body", out.Body)
		return out, nil
	}

	out.Removed = len(out.IDs)
	s.log.Info("entries removed", "from", fromStr, "to", toStr, "count", out.Removed)
	return out, nil
}

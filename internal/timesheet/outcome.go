package timesheet

import (
	"fmt"
	"strings"
)

// Outcome is the result of processing one day.
type Outcome int

const (
	Submitted Outcome = iota
	SkippedExisting
	SkippedOffDay
	SkippedHoliday
	Failed

	outcomeCount
)

// Outcomes lists every outcome in report order.
var Outcomes = []Outcome{Submitted, SkippedExisting, SkippedOffDay, SkippedHoliday, Failed}

func (o Outcome) String() string {
	switch o {
	case Submitted:
		return "submitted"
	case SkippedExisting:
		return "skipped-existing"
	case SkippedOffDay:
		return "skipped-off-day"
	case SkippedHoliday:
		return "skipped-holiday"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Decide applies the per-day rules in order: an already clocked day, then an
// approved off day, then a holiday. The first that holds wins. Submitted means
// nothing blocks the day and entries should be sent.
func Decide(existing, offDay, holiday bool) Outcome {
	switch {
	case existing:
		return SkippedExisting
	case offDay:
		return SkippedOffDay
	case holiday:
		return SkippedHoliday
	default:
		return Submitted
	}
}

// CheckPolicy decides what a failed read check means.
type CheckPolicy int

const (
	// FailOpen treats a failed check as "does not block the day".
	FailOpen CheckPolicy = iota
	// FailClosed treats a failed check as "blocks the day".
	FailClosed
)

func (p CheckPolicy) String() string {
	if p == FailClosed {
		return "fail-closed"
	}
	return "fail-open"
}

// ParseCheckPolicy accepts "fail-open" or "fail-closed".
func ParseCheckPolicy(s string) (CheckPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail-open", "open":
		return FailOpen, nil
	case "fail-closed", "closed":
		return FailClosed, nil
	default:
		return FailOpen, fmt.Errorf("unknown check failure policy %q, use fail-open or fail-closed", s)
	}
}

// Summary counts the outcomes of a run.
type Summary struct {
	counts [outcomeCount]int
}

func (s *Summary) add(o Outcome) {
	if o >= 0 && o < outcomeCount {
		s.counts[o]++
	}
}

// Count returns how many days ended with o.
func (s Summary) Count(o Outcome) int {
	if o < 0 || o >= outcomeCount {
		return 0
	}
	return s.counts[o]
}

// Days returns the number of processed days.
func (s Summary) Days() int {
	total := 0
	for _, n := range s.counts {
		total += n
	}
	return total
}

// Package timesheet decides, day by day, whether clock entries are submitted
// to BambooHR and carries out the submission or bulk removal.
package timesheet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/punchclock/internal/bamboo"
	"github.com/julianstephens/punchclock/internal/constants"
	"github.com/julianstephens/punchclock/internal/logger"
)

// ErrSubmitAborted marks a submission that never got an HTTP reply. The run
// stops at the first one, since a half-submitted period is harder to audit
// than one that stops early.
var ErrSubmitAborted = errors.New("submission aborted")

// API is the subset of the BambooHR client the submitter needs.
type API interface {
	EmployeeID() string
	TimesheetEntries(ctx context.Context, from, to time.Time) ([]bamboo.TimesheetEntry, error)
	TimeOffRequests(ctx context.Context, from, to time.Time) ([]bamboo.TimeOffRequest, error)
	WhosOut(ctx context.Context, from, to time.Time) ([]bamboo.WhosOutEntry, error)
	StoreClockEntries(ctx context.Context, entries []bamboo.ClockEntry) (*bamboo.Response, error)
	DeleteClockEntries(ctx context.Context, ids []int) (*bamboo.Response, error)
}

// Reporter receives the human-readable account of a run.
type Reporter interface {
	Begin(date time.Time)
	Note(date time.Time, msg string)
	Warn(date time.Time, msg string)
	Done(date time.Time, outcome Outcome)
}

type nopReporter struct{}

func (nopReporter) Begin(time.Time)         {}
func (nopReporter) Note(time.Time, string)  {}
func (nopReporter) Warn(time.Time, string)  {}
func (nopReporter) Done(time.Time, Outcome) {}

// Option configures a Submitter.
type Option func(*Submitter)

// WithCheckPolicy sets how failed read checks are treated. Default FailOpen.
func WithCheckPolicy(p CheckPolicy) Option {
	return func(s *Submitter) { s.policy = p }
}

// WithReporter sends per-day progress to r.
func WithReporter(r Reporter) Option {
	return func(s *Submitter) { s.reporter = r }
}

// WithLogger replaces the default child of the global logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Submitter) { s.log = l }
}

// Submitter clocks days for the employee of its API.
type Submitter struct {
	api      API
	policy   CheckPolicy
	reporter Reporter
	log      *log.Logger
}

// New returns a fail-open Submitter with no reporter unless opts say otherwise.
func New(api API, opts ...Option) *Submitter {
	s := &Submitter{
		api:      api,
		policy:   FailOpen,
		reporter: nopReporter{},
		log:      logger.With(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DayEntries returns the fixed morning and afternoon entries for date.
func DayEntries(employeeID string, date time.Time) []bamboo.ClockEntry {
	day := date.Format(constants.DateFormat)
	id := json.Number(employeeID)
	return []bamboo.ClockEntry{
		{EmployeeID: id, Date: day, Start: constants.MorningStart, End: constants.MorningEnd},
		{EmployeeID: id, Date: day, Start: constants.AfternoonStart, End: constants.AfternoonEnd},
	}
}

// checkFailed applies the check policy to a failed read and returns the
// value the check should report.
func (s *Submitter) checkFailed(date time.Time, check string, err error) bool {
	blocked := s.policy == FailClosed
	s.log.Warn("check failed", "check", check, "date", date.Format(constants.DateFormat), "policy", s.policy, "error", err)

	assumption := "assuming it does not apply"
	if blocked {
		assumption = "assuming it applies, day will be skipped"
	}
	s.reporter.Warn(date, fmt.Sprintf("could not check %s (%v), %s", check, err, assumption))
	return blocked
}

// HasExistingEntries reports whether anything is already recorded between
// from and to.
func (s *Submitter) HasExistingEntries(ctx context.Context, from, to time.Time) bool {
	entries, err := s.api.TimesheetEntries(ctx, from, to)
	if err != nil {
		return s.checkFailed(from, "existing entries", err)
	}
	if len(entries) > 0 {
		s.log.Debug("existing entries found", "from", from.Format(constants.DateFormat), "to", to.Format(constants.DateFormat), "count", len(entries))
	}
	return len(entries) > 0
}

// IsApprovedOffDay reports whether date is covered by an approved time off
// request. More than one request for the day is not disambiguated and counts
// as off.
func (s *Submitter) IsApprovedOffDay(ctx context.Context, date time.Time) bool {
	requests, err := s.api.TimeOffRequests(ctx, date, date)
	if err != nil {
		return s.checkFailed(date, "time off", err)
	}

	switch len(requests) {
	case 0:
		return false
	case 1:
	default:
		s.log.Warn("multiple time off requests", "date", date.Format(constants.DateFormat), "count", len(requests))
		s.reporter.Warn(date, fmt.Sprintf("%d time off requests found, not handled automatically; treating as off, review manually", len(requests)))
		return true
	}

	req := requests[0]
	if !strings.EqualFold(req.Status.Status, constants.TimeOffStatusApproved) {
		s.log.Debug("time off request not approved", "date", date.Format(constants.DateFormat), "status", req.Status.Status)
		return false
	}

	details := strings.TrimSpace(fmt.Sprintf("%s %s %s", req.Amount.Amount, req.Amount.Unit, req.Type.Name))
	s.log.Info("approved time off", "date", date.Format(constants.DateFormat), "amount", req.Amount.Amount, "unit", req.Amount.Unit, "type", req.Type.Name)
	s.reporter.Note(date, "time off: "+details)
	return true
}

// IsHoliday reports whether the who's out feed lists a holiday on date.
func (s *Submitter) IsHoliday(ctx context.Context, date time.Time) bool {
	entries, err := s.api.WhosOut(ctx, date, date)
	if err != nil {
		return s.checkFailed(date, "holidays", err)
	}

	for _, e := range entries {
		if e.Type == constants.WhosOutTypeHoliday {
			s.reporter.Note(date, "holiday: "+e.Name)
			return true
		}
	}
	return false
}

// ClockDay runs the checks for date in order, stopping at the first that
// blocks, and submits the day's entries when none does.
//
// A non-2xx reply yields Failed with a nil error. A submission that gets no
// reply at all yields Failed and an error wrapping ErrSubmitAborted.
func (s *Submitter) ClockDay(ctx context.Context, date time.Time) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Failed, fmt.Errorf("%w: %w", ErrSubmitAborted, err)
	}

	existing := s.HasExistingEntries(ctx, date, date)
	offDay := !existing && s.IsApprovedOffDay(ctx, date)
	holiday := !existing && !offDay && s.IsHoliday(ctx, date)

	if outcome := Decide(existing, offDay, holiday); outcome != Submitted {
		s.log.Info("day skipped", "date", date.Format(constants.DateFormat), "outcome", outcome)
		return outcome, nil
	}
	return s.submit(ctx, date)
}

func (s *Submitter) submit(ctx context.Context, date time.Time) (Outcome, error) {
	day := date.Format(constants.DateFormat)

	resp, err := s.api.StoreClockEntries(ctx, DayEntries(s.api.EmployeeID(), date))
	if err != nil {
		s.log.Error("submit request failed", "date", day, "error", err)
		return Failed, fmt.Errorf("%w for %s: %w", ErrSubmitAborted, day, err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		s.log.Info("day submitted", "date", day, "status", resp.StatusCode)
		return Submitted, nil
	default:
		body := strings.TrimSpace(string(resp.Body))
		s.log.Error("submit rejected", "date", day, "status", resp.StatusCode, "body", body)
		s.reporter.Warn(date, fmt.Sprintf("request failed with status code %d: %s", resp.StatusCode, body))
		return Failed, nil
	}
}

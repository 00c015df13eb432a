package timesheet

import (
	"context"
	"time"

	"github.com/julianstephens/punchclock/internal/bamboo"
)

// fakeAPI is an in-memory BambooHR stand-in that records every call.
type fakeAPI struct {
	employeeID string

	entries    map[string][]bamboo.TimesheetEntry
	timeOff    map[string][]bamboo.TimeOffRequest
	whosOut    map[string][]bamboo.WhosOutEntry
	entriesErr error
	timeOffErr error
	whosOutErr error

	storeResp *bamboo.Response
	storeErr  error
	// storeErrOn fails only the submission for this date
	storeErrOn string

	deleteResp *bamboo.Response
	deleteErr  error

	calls   []string
	stored  [][]bamboo.ClockEntry
	deleted [][]int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		employeeID: "42",
		entries:    map[string][]bamboo.TimesheetEntry{},
		timeOff:    map[string][]bamboo.TimeOffRequest{},
		whosOut:    map[string][]bamboo.WhosOutEntry{},
		storeResp:  &bamboo.Response{StatusCode: 201},
		deleteResp: &bamboo.Response{StatusCode: 204},
	}
}

func key(d time.Time) string { return d.Format("2006-01-02") }

func (f *fakeAPI) EmployeeID() string { return f.employeeID }

func (f *fakeAPI) TimesheetEntries(_ context.Context, from, to time.Time) ([]bamboo.TimesheetEntry, error) {
	f.calls = append(f.calls, "entries")
	if f.entriesErr != nil {
		return nil, f.entriesErr
	}
	var out []bamboo.TimesheetEntry
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, f.entries[key(d)]...)
	}
	return out, nil
}

func (f *fakeAPI) TimeOffRequests(_ context.Context, from, _ time.Time) ([]bamboo.TimeOffRequest, error) {
	f.calls = append(f.calls, "timeoff")
	if f.timeOffErr != nil {
		return nil, f.timeOffErr
	}
	return f.timeOff[key(from)], nil
}

func (f *fakeAPI) WhosOut(_ context.Context, from, _ time.Time) ([]bamboo.WhosOutEntry, error) {
	f.calls = append(f.calls, "whosout")
	if f.whosOutErr != nil {
		return nil, f.whosOutErr
	}
	return f.whosOut[key(from)], nil
}

func (f *fakeAPI) StoreClockEntries(_ context.Context, entries []bamboo.ClockEntry) (*bamboo.Response, error) {
	f.calls = append(f.calls, "store")
	f.stored = append(f.stored, entries)
	if f.storeErr != nil && (f.storeErrOn == "" || (len(entries) > 0 && entries[0].Date == f.storeErrOn)) {
		return nil, f.storeErr
	}
	return f.storeResp, nil
}

func (f *fakeAPI) DeleteClockEntries(_ context.Context, ids []int) (*bamboo.Response, error) {
	f.calls = append(f.calls, "delete")
	f.deleted = append(f.deleted, ids)
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return f.deleteResp, nil
}

// recordingReporter keeps every reporter callback as a line.
type recordingReporter struct {
	lines []string
}

func (r *recordingReporter) Begin(d time.Time) { r.lines = append(r.lines, "begin "+key(d)) }
func (r *recordingReporter) Note(d time.Time, msg string) {
	r.lines = append(r.lines, "note "+key(d)+" "+msg)
}
func (r *recordingReporter) Warn(d time.Time, msg string) {
	r.lines = append(r.lines, "warn "+key(d)+" "+msg)
}
func (r *recordingReporter) Done(d time.Time, o Outcome) {
	r.lines = append(r.lines, "done "+key(d)+" "+o.String())
}

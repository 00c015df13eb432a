package timesheet

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/punchclock/internal/bamboo"
	"github.com/julianstephens/punchclock/internal/period"
)

var monday = time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

func approved(unit, amount, name string) bamboo.TimeOffRequest {
	var r bamboo.TimeOffRequest
	r.Status.Status = "approved"
	r.Amount.Unit = unit
	r.Amount.Amount = json.Number(amount)
	r.Type.Name = name
	return r
}

func TestDecide(t *testing.T) {
	tests := []struct {
		existing, offDay, holiday bool
		want                      Outcome
	}{
		{false, false, false, Submitted},
		{true, false, false, SkippedExisting},
		{true, true, true, SkippedExisting},
		{false, true, false, SkippedOffDay},
		{false, true, true, SkippedOffDay},
		{false, false, true, SkippedHoliday},
		{true, false, true, SkippedExisting},
	}

	for _, tt := range tests {
		if got := Decide(tt.existing, tt.offDay, tt.holiday); got != tt.want {
			t.Errorf("Decide(%v, %v, %v) = %v, want %v", tt.existing, tt.offDay, tt.holiday, got, tt.want)
		}
	}
}

func TestClockDaySkipsExisting(t *testing.T) {
	api := newFakeAPI()
	api.entries[key(monday)] = []bamboo.TimesheetEntry{{ID: 1, Date: key(monday)}}

	got, err := New(api).ClockDay(context.Background(), monday)
	if err != nil {
		t.Fatalf("ClockDay() error = %v", err)
	}
	if got != SkippedExisting {
		t.Errorf("ClockDay() = %v, want %v", got, SkippedExisting)
	}
	if !slices.Equal(api.calls, []string{"entries"}) {
		t.Errorf("calls = %v, want only the entries lookup", api.calls)
	}
}

func TestClockDaySkipsApprovedOffDay(t *testing.T) {
	api := newFakeAPI()
	api.timeOff[key(monday)] = []bamboo.TimeOffRequest{approved("hours", "8", "Vacation")}
	rep := &recordingReporter{}

	got, err := New(api, WithReporter(rep)).ClockDay(context.Background(), monday)
	if err != nil {
		t.Fatalf("ClockDay() error = %v", err)
	}
	if got != SkippedOffDay {
		t.Errorf("ClockDay() = %v, want %v", got, SkippedOffDay)
	}
	if !slices.Equal(api.calls, []string{"entries", "timeoff"}) {
		t.Errorf("calls = %v", api.calls)
	}
	if !slices.Contains(rep.lines, "note 2025-03-03 time off: 8 hours Vacation") {
		t.Errorf("reporter lines = %v, want time off note", rep.lines)
	}
}

func TestClockDaySkipsHoliday(t *testing.T) {
	api := newFakeAPI()
	api.whosOut[key(monday)] = []bamboo.WhosOutEntry{
		{ID: 1, Type: "timeOff", Name: "Colleague"},
		{ID: 2, Type: "holiday", Name: "Carnival"},
	}

	got, err := New(api).ClockDay(context.Background(), monday)
	if err != nil {
		t.Fatalf("ClockDay() error = %v", err)
	}
	if got != SkippedHoliday {
		t.Errorf("ClockDay() = %v, want %v", got, SkippedHoliday)
	}
	if slices.Contains(api.calls, "store") {
		t.Error("holiday should not be submitted")
	}
}

func TestClockDayIgnoresOthersTimeOffInWhosOut(t *testing.T) {
	api := newFakeAPI()
	api.whosOut[key(monday)] = []bamboo.WhosOutEntry{{ID: 1, Type: "timeOff", Name: "Colleague"}}

	got, _ := New(api).ClockDay(context.Background(), monday)
	if got != Submitted {
		t.Errorf("ClockDay() = %v, want %v", got, Submitted)
	}
}

func TestClockDaySubmitsTwoEntries(t *testing.T) {
	api := newFakeAPI()

	got, err := New(api).ClockDay(context.Background(), monday)
	if err != nil {
		t.Fatalf("ClockDay() error = %v", err)
	}
	if got != Submitted {
		t.Fatalf("ClockDay() = %v, want %v", got, Submitted)
	}
	if !slices.Equal(api.calls, []string{"entries", "timeoff", "whosout", "store"}) {
		t.Errorf("calls = %v", api.calls)
	}

	want := []bamboo.ClockEntry{
		{EmployeeID: "42", Date: "2025-03-03", Start: "08:00", End: "13:00"},
		{EmployeeID: "42", Date: "2025-03-03", Start: "14:00", End: "17:00"},
	}
	if len(api.stored) != 1 || !slices.Equal(api.stored[0], want) {
		t.Errorf("stored = %v, want %v", api.stored, want)
	}
}

func TestClockDayAcceptsStatusOK(t *testing.T) {
	api := newFakeAPI()
	api.storeResp = &bamboo.Response{StatusCode: 200}

	if got, _ := New(api).ClockDay(context.Background(), monday); got != Submitted {
		t.Errorf("ClockDay() = %v, want %v", got, Submitted)
	}
}

func TestClockDayRejectedIsNonFatal(t *testing.T) {
	api := newFakeAPI()
	api.storeResp = &bamboo.Response{StatusCode: 500, Body: []byte("internal error\n")}
	rep := &recordingReporter{}

	got, err := New(api, WithReporter(rep)).ClockDay(context.Background(), monday)
	if err != nil {
		t.Fatalf("ClockDay() error = %v, want nil for a non-2xx reply", err)
	}
	if got != Failed {
		t.Errorf("ClockDay() = %v, want %v", got, Failed)
	}
	if !slices.Contains(rep.lines, "warn 2025-03-03 request failed with status code 500: internal error") {
		t.Errorf("reporter lines = %v", rep.lines)
	}
}

func TestClockDayNetworkFailureAborts(t *testing.T) {
	api := newFakeAPI()
	api.storeErr = errors.New("connection reset")

	got, err := New(api).ClockDay(context.Background(), monday)
	if got != Failed {
		t.Errorf("ClockDay() = %v, want %v", got, Failed)
	}
	if !errors.Is(err, ErrSubmitAborted) {
		t.Errorf("ClockDay() error = %v, want %v", err, ErrSubmitAborted)
	}
}

func TestClockDayCanceledContext(t *testing.T) {
	api := newFakeAPI()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := New(api).ClockDay(ctx, monday)
	if got != Failed || !errors.Is(err, context.Canceled) || !errors.Is(err, ErrSubmitAborted) {
		t.Errorf("ClockDay() = %v, %v", got, err)
	}
	if len(api.calls) != 0 {
		t.Errorf("calls = %v, want none", api.calls)
	}
}

func TestIsApprovedOffDay(t *testing.T) {
	pending := approved("days", "1", "Sick")
	pending.Status.Status = "requested"

	tests := []struct {
		name     string
		requests []bamboo.TimeOffRequest
		want     bool
		wantWarn bool
	}{
		{name: "no requests", want: false},
		{name: "one approved", requests: []bamboo.TimeOffRequest{approved("days", "1", "Vacation")}, want: true},
		{name: "one pending", requests: []bamboo.TimeOffRequest{pending}, want: false},
		{
			name:     "several requests are treated as off",
			requests: []bamboo.TimeOffRequest{approved("hours", "4", "Vacation"), pending},
			want:     true,
			wantWarn: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI()
			api.timeOff[key(monday)] = tt.requests
			rep := &recordingReporter{}

			got := New(api, WithReporter(rep)).IsApprovedOffDay(context.Background(), monday)
			if got != tt.want {
				t.Errorf("IsApprovedOffDay() = %v, want %v", got, tt.want)
			}
			warned := slices.ContainsFunc(rep.lines, func(l string) bool {
				return strings.HasPrefix(l, "warn ") && strings.Contains(l, "review manually")
			})
			if warned != tt.wantWarn {
				t.Errorf("warned = %v, want %v (lines %v)", warned, tt.wantWarn, rep.lines)
			}
		})
	}
}

func TestCheckPolicyOnReadFailures(t *testing.T) {
	boom := errors.New("dial tcp: i/o timeout")

	tests := []struct {
		name   string
		policy CheckPolicy
		setup  func(*fakeAPI)
		want   Outcome
	}{
		{"entries fail open", FailOpen, func(f *fakeAPI) { f.entriesErr = boom }, Submitted},
		{"entries fail closed", FailClosed, func(f *fakeAPI) { f.entriesErr = boom }, SkippedExisting},
		{"time off fail open", FailOpen, func(f *fakeAPI) { f.timeOffErr = boom }, Submitted},
		{"time off fail closed", FailClosed, func(f *fakeAPI) { f.timeOffErr = boom }, SkippedOffDay},
		{"holiday fail open", FailOpen, func(f *fakeAPI) { f.whosOutErr = boom }, Submitted},
		{"holiday fail closed", FailClosed, func(f *fakeAPI) { f.whosOutErr = boom }, SkippedHoliday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI()
			tt.setup(api)
			rep := &recordingReporter{}

			got, err := New(api, WithCheckPolicy(tt.policy), WithReporter(rep)).ClockDay(context.Background(), monday)
			if err != nil {
				t.Fatalf("ClockDay() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ClockDay() = %v, want %v", got, tt.want)
			}
			if !slices.ContainsFunc(rep.lines, func(l string) bool { return strings.HasPrefix(l, "warn ") }) {
				t.Errorf("failed check was not reported: %v", rep.lines)
			}
		})
	}
}

func TestParseCheckPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    CheckPolicy
		wantErr bool
	}{
		{"", FailOpen, false},
		{"fail-open", FailOpen, false},
		{"Fail-Closed", FailClosed, false},
		{"closed", FailClosed, false},
		{"sometimes", FailOpen, true},
	}
	for _, tt := range tests {
		got, err := ParseCheckPolicy(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseCheckPolicy(%q) = %v, %v", tt.in, got, err)
		}
	}
	if FailClosed.String() != "fail-closed" || FailOpen.String() != "fail-open" {
		t.Error("CheckPolicy.String() mismatch")
	}
}

func TestClockPeriod(t *testing.T) {
	api := newFakeAPI()
	api.entries["2025-03-04"] = []bamboo.TimesheetEntry{{ID: 9}}
	api.timeOff["2025-03-05"] = []bamboo.TimeOffRequest{approved("days", "1", "Vacation")}
	api.whosOut["2025-03-06"] = []bamboo.WhosOutEntry{{Type: "holiday", Name: "Founders Day"}}
	rep := &recordingReporter{}

	days := period.Workdays(monday, monday.AddDate(0, 0, 6))
	summary, err := New(api, WithReporter(rep)).ClockPeriod(context.Background(), days)
	if err != nil {
		t.Fatalf("ClockPeriod() error = %v", err)
	}

	if summary.Days() != 5 {
		t.Errorf("Days() = %d, want 5", summary.Days())
	}
	for o, want := range map[Outcome]int{Submitted: 2, SkippedExisting: 1, SkippedOffDay: 1, SkippedHoliday: 1, Failed: 0} {
		if got := summary.Count(o); got != want {
			t.Errorf("Count(%v) = %d, want %d", o, got, want)
		}
	}
	if rep.lines[0] != "begin 2025-03-03" || rep.lines[len(rep.lines)-1] != "done 2025-03-07 submitted" {
		t.Errorf("unexpected report order: %v", rep.lines)
	}
}

func TestClockPeriodStopsOnNetworkFailure(t *testing.T) {
	api := newFakeAPI()
	api.storeErr = errors.New("connection refused")
	api.storeErrOn = "2025-03-04"

	days := period.Workdays(monday, monday.AddDate(0, 0, 4))
	summary, err := New(api).ClockPeriod(context.Background(), days)
	if !errors.Is(err, ErrSubmitAborted) {
		t.Fatalf("ClockPeriod() error = %v, want %v", err, ErrSubmitAborted)
	}
	if summary.Days() != 2 || summary.Count(Submitted) != 1 || summary.Count(Failed) != 1 {
		t.Errorf("summary = %d days, %d submitted, %d failed", summary.Days(), summary.Count(Submitted), summary.Count(Failed))
	}
	if len(api.stored) != 2 {
		t.Errorf("store called %d times, want 2", len(api.stored))
	}
}

// cancelOnDone cancels the run as soon as the given day is finished.
type cancelOnDone struct {
	recordingReporter
	day    string
	cancel context.CancelFunc
}

func (r *cancelOnDone) Done(d time.Time, o Outcome) {
	r.recordingReporter.Done(d, o)
	if key(d) == r.day {
		r.cancel()
	}
}

func TestClockPeriodStopsWhenCancelled(t *testing.T) {
	api := newFakeAPI()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rep := &cancelOnDone{day: "2025-03-04", cancel: cancel}

	days := period.Workdays(monday, monday.AddDate(0, 0, 4))
	summary, err := New(api, WithReporter(rep)).ClockPeriod(ctx, days)
	if !errors.Is(err, context.Canceled) || !errors.Is(err, ErrSubmitAborted) {
		t.Fatalf("ClockPeriod() error = %v, want cancellation", err)
	}
	if summary.Days() != 2 || summary.Count(Submitted) != 2 || summary.Count(Failed) != 0 {
		t.Errorf("summary = %d days, %d submitted, %d failed", summary.Days(), summary.Count(Submitted), summary.Count(Failed))
	}
	for _, line := range rep.lines {
		if strings.Contains(line, "2025-03-05") {
			t.Errorf("day after cancellation was reported: %q", line)
		}
	}
}

func TestClockPeriodAlreadyCancelled(t *testing.T) {
	api := newFakeAPI()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep := &recordingReporter{}

	summary, err := New(api, WithReporter(rep)).ClockPeriod(ctx, period.Workdays(monday, monday))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("ClockPeriod() error = %v, want context.Canceled", err)
	}
	if summary.Days() != 0 || len(rep.lines) != 0 || len(api.calls) != 0 {
		t.Errorf("nothing should run: days=%d lines=%v calls=%v", summary.Days(), rep.lines, api.calls)
	}
}

func TestClockPeriodContinuesAfterRejection(t *testing.T) {
	api := newFakeAPI()
	api.storeResp = &bamboo.Response{StatusCode: 422}

	days := period.Workdays(monday, monday.AddDate(0, 0, 4))
	summary, err := New(api).ClockPeriod(context.Background(), days)
	if err != nil {
		t.Fatalf("ClockPeriod() error = %v", err)
	}
	if summary.Count(Failed) != 5 {
		t.Errorf("Count(Failed) = %d, want 5", summary.Count(Failed))
	}
}

func TestOutcomeString(t *testing.T) {
	want := []string{"submitted", "skipped-existing", "skipped-off-day", "skipped-holiday", "failed"}
	for i, o := range Outcomes {
		if o.String() != want[i] {
			t.Errorf("%d.String() = %q, want %q", int(o), o.String(), want[i])
		}
	}
	if Outcome(99).String() != "outcome(99)" {
		t.Errorf("unknown outcome string = %q", Outcome(99).String())
	}
}

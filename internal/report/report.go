// Package report prints the console account of a run.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/punchclock/internal/constants"
	"github.com/julianstephens/punchclock/internal/period"
	"github.com/julianstephens/punchclock/internal/timesheet"
)

var markers = map[timesheet.Outcome]string{
	timesheet.Submitted:       "✅ Done",
	timesheet.SkippedExisting: "⏭  CANCELLED because of existing entries",
	timesheet.SkippedOffDay:   "🌴 CANCELLED because of off day",
	timesheet.SkippedHoliday:  "🎉 CANCELLED because of holiday",
	timesheet.Failed:          "❌ FAILED",
}

// Marker returns the console marker for an outcome.
func Marker(o timesheet.Outcome) string {
	if m, ok := markers[o]; ok {
		return m
	}
	return o.String()
}

type styles struct {
	heading lipgloss.Style
	success lipgloss.Style
	skipped lipgloss.Style
	danger  lipgloss.Style
	warning lipgloss.Style
	muted   lipgloss.Style
}

// Printer writes styled run output to w. Colours are only emitted when w is
// a terminal that supports them.
type Printer struct {
	w      io.Writer
	styles styles
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w: w,
		styles: styles{
			heading: r.NewStyle().Bold(true),
			success: r.NewStyle().Foreground(lipgloss.Color("42")),
			skipped: r.NewStyle().Foreground(lipgloss.Color("244")),
			danger:  r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			warning: r.NewStyle().Foreground(lipgloss.Color("214")).Italic(true),
			muted:   r.NewStyle().Foreground(lipgloss.Color("240")),
		},
	}
}

func (p *Printer) style(o timesheet.Outcome) lipgloss.Style {
	switch o {
	case timesheet.Submitted:
		return p.styles.success
	case timesheet.Failed:
		return p.styles.danger
	default:
		return p.styles.skipped
	}
}

// Begin announces the day being clocked.
func (p *Printer) Begin(date time.Time) {
	fmt.Fprintf(p.w, "⏰ Clocking for %s\n", date.Format(constants.DateFormat))
}

// Note prints an informational line for the current day.
func (p *Printer) Note(_ time.Time, msg string) {
	fmt.Fprintln(p.w, p.styles.muted.Render("   ℹ "+msg))
}

// Warn prints a warning for the current day.
func (p *Printer) Warn(_ time.Time, msg string) {
	fmt.Fprintln(p.w, p.styles.warning.Render("   ⚠ Warning: "+msg))
}

// Done prints the marker for the day's outcome.
func (p *Printer) Done(_ time.Time, o timesheet.Outcome) {
	fmt.Fprintln(p.w, p.style(o).Render("... "+Marker(o)))
}

// Banner prints the beta disclaimer and what is about to happen.
func (p *Printer) Banner(action string, per period.Period) {
	rule := strings.Repeat("=", 70)
	fmt.Fprintln(p.w, rule)
	fmt.Fprintln(p.w, p.styles.warning.Render("⚠️  WARNING: This is a BETA tool"))
	fmt.Fprintln(p.w, rule)
	fmt.Fprintln(p.w, "You are responsible for verifying that all information is properly")
	fmt.Fprintln(p.w, "logged into BambooHR. Please check your timesheet entries after")
	fmt.Fprintln(p.w, "running this tool to ensure accuracy.")
	fmt.Fprintln(p.w, rule)
	fmt.Fprintln(p.w)
	fmt.Fprintf(p.w, "Timesheet for %s is about to be %s\n", per, action)
}

// Summary prints the per-outcome totals of a run.
func (p *Printer) Summary(s timesheet.Summary) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.styles.heading.Render(fmt.Sprintf("Summary: %d day(s) processed", s.Days())))
	for _, o := range timesheet.Outcomes {
		if n := s.Count(o); n > 0 {
			fmt.Fprintf(p.w, "  %-18s %d\n", o.String(), n)
		}
	}
}

// Removal prints the result of a bulk removal.
func (p *Printer) Removal(per period.Period, out timesheet.RemovalOutcome) {
	switch {
	case len(out.IDs) == 0:
		fmt.Fprintf(p.w, "No entries found for %s, nothing removed\n", per)
	case out.Failed:
		fmt.Fprintln(p.w, p.styles.danger.Render(fmt.Sprintf("❌ Removal of %d entries failed with status code %d: %s", len(out.IDs), out.StatusCode, out.Body)))
	default:
		fmt.Fprintln(p.w, p.styles.success.Render(fmt.Sprintf("✅ Removed %d entries for %s", out.Removed, per)))
	}
}

// Workdays lists the days of a period that would be clocked.
func (p *Printer) Workdays(per period.Period) int {
	fmt.Fprintln(p.w, p.styles.heading.Render("Period "+per.String()))
	n := 0
	for d := range per.Workdays() {
		fmt.Fprintf(p.w, "  %s %s\n", d.Format(constants.DateFormat), d.Weekday().String()[:3])
		n++
	}
	fmt.Fprintf(p.w, "%d workday(s)\n", n)
	return n
}

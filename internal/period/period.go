// Package period works out which calendar days a timesheet run covers.
package period

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/julianstephens/punchclock/internal/constants"
	"github.com/julianstephens/punchclock/internal/utils"
)

// ErrInvalidDateFormat is returned when a start date override is not DD-MM-YYYY.
var ErrInvalidDateFormat = errors.New("invalid date format, expected DD-MM-YYYY")

// ResolveStartDate returns the first day of the timesheet period.
//
// An explicit override wins. Otherwise runs made before the rollover day
// cover the previous month, and later runs cover the current one.
func ResolveStartDate(today time.Time, override string) (time.Time, error) {
	if override = strings.TrimSpace(override); override != "" {
		start, err := time.Parse(constants.InputDateFormat, override)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, override)
		}
		return start, nil
	}

	year, month := today.Year(), today.Month()
	if today.Day() < constants.PeriodRolloverDay {
		month--
		if month < time.January {
			month = time.December
			year--
		}
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
}

// ResolveEndDate returns the last day of the period. A positive lastDay is
// used as-is within start's month and is not checked against the month
// length; see ValidateLastDay. Zero means the end of the month.
func ResolveEndDate(start time.Time, lastDay int) time.Time {
	if lastDay <= 0 {
		lastDay = DaysInMonth(start.Year(), start.Month())
	}
	return time.Date(start.Year(), start.Month(), lastDay, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// day 0 of the next month normalises to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ValidateLastDay checks that lastDay exists in start's month and does not
// precede start. Zero is accepted and means the end of the month.
func ValidateLastDay(start time.Time, lastDay int) error {
	if lastDay == 0 {
		return nil
	}
	days := DaysInMonth(start.Year(), start.Month())
	if lastDay < 1 || lastDay > days {
		return fmt.Errorf("last day %d is outside %s %d (1-%d)", lastDay, start.Month(), start.Year(), days)
	}
	if lastDay < start.Day() {
		return fmt.Errorf("last day %d is before the start date %s", lastDay, start.Format(constants.DateFormat))
	}
	return nil
}

// IsWorkday reports whether d falls on Monday to Friday.
func IsWorkday(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// Workdays yields every weekday from start to end inclusive in ascending
// order. The sequence is empty when end is before start and can be ranged
// over any number of times.
func Workdays(start, end time.Time) iter.Seq[time.Time] {
	first, last := utils.DateOf(start), utils.DateOf(end)
	return func(yield func(time.Time) bool) {
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			if !IsWorkday(d) {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}
}

// Period is a resolved inclusive date range.
type Period struct {
	Start time.Time
	End   time.Time
}

// Resolve combines ResolveStartDate, ValidateLastDay and ResolveEndDate.
func Resolve(today time.Time, lastDay int, override string) (Period, error) {
	start, err := ResolveStartDate(today, override)
	if err != nil {
		return Period{}, err
	}
	if err := ValidateLastDay(start, lastDay); err != nil {
		return Period{}, err
	}
	return Period{Start: start, End: ResolveEndDate(start, lastDay)}, nil
}

// Workdays yields the period's workdays.
func (p Period) Workdays() iter.Seq[time.Time] {
	return Workdays(p.Start, p.End)
}

func (p Period) String() string {
	return p.Start.Format(constants.DateFormat) + " to " + p.End.Format(constants.DateFormat)
}

package constants

import "time"

const (
	AppName            = "punchclock"
	DefaultKeyringUser = "bamboohr-api-key"
	DefaultConfigPath  = "~/.config/punchclock/config.yaml"
	Version            = "v0.3.0"

	// DateFormat is the wire date format used by the BambooHR API (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// InputDateFormat is the day-month-year format accepted on the command line.
	// Single-digit days and months are accepted (22-1-2025).
	InputDateFormat = "2-1-2006"

	// Environment variables
	EnvEmployeeID = "BAMBOO_EMPLOYEE_ID"
	EnvAPIKey     = "BAMBOO_API_KEY"
	EnvBaseURL    = "BAMBOO_API_BASE_URL"
	EnvTimezone   = "PUNCHCLOCK_TIMEZONE"

	DefaultBaseURL           = "https://backbase.bamboohr.com/api/v1"
	DefaultTimeout           = 30 * time.Second
	DefaultRequestsPerSecond = 5.0

	// A timesheet run started before this day of the month clocks the previous month.
	PeriodRolloverDay = 10

	// Working day schedule submitted for every clocked day
	MorningStart   = "08:00"
	MorningEnd     = "13:00"
	AfternoonStart = "14:00"
	AfternoonEnd   = "17:00"

	// BambooHR record values
	TimeOffStatusApproved = "approved"
	WhosOutTypeHoliday    = "holiday"
)

package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/punchclock/internal/bamboo"
	"github.com/julianstephens/punchclock/internal/cli"
	"github.com/julianstephens/punchclock/internal/config"
	"github.com/julianstephens/punchclock/internal/keyring"
	"github.com/julianstephens/punchclock/internal/logger"
)

// DoctorCmd checks that a run would be able to start: settings, keyring,
// clock and API access.
type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Fprintln(ctx.Out, "Running diagnostics...")
	fmt.Fprintln(ctx.Out)

	hasError := false

	// Check 1: configuration resolves and validates
	cfg, cfgErr := ctx.Config()
	if cfgErr != nil {
		fmt.Fprintf(ctx.Out, "❌ Configuration: FAIL\n")
		fmt.Fprintf(ctx.Out, "   Error: %v\n", cfgErr)
		hasError = true
	} else {
		fmt.Fprintf(ctx.Out, "✓ Configuration: OK (employee %s, %s)\n", cfg.EmployeeID, cfg.BaseURL)
	}

	// Check 2: keyring (warning only, the key may come from elsewhere)
	if err := checkKeyring(); err != nil {
		fmt.Fprintf(ctx.Out, "⚠ OS keyring: WARNING\n")
		fmt.Fprintf(ctx.Out, "   %v\n", err)
	} else {
		fmt.Fprintf(ctx.Out, "✓ OS keyring: OK\n")
	}

	// Check 3: clock and timezone
	today, err := checkClockTimezone(ctx, cfg)
	if err != nil {
		fmt.Fprintf(ctx.Out, "❌ Clock/timezone: FAIL\n")
		fmt.Fprintf(ctx.Out, "   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Fprintf(ctx.Out, "✓ Clock/timezone: OK (today is %s)\n", today.Format("Mon 2006-01-02"))
	}

	// Check 4: API reachable with these credentials
	if cfgErr != nil || err != nil {
		fmt.Fprintf(ctx.Out, "⊘ BambooHR API: SKIPPED (configuration not usable)\n")
	} else if err := checkAPI(ctx, cfg, today); err != nil {
		fmt.Fprintf(ctx.Out, "❌ BambooHR API: FAIL\n")
		fmt.Fprintf(ctx.Out, "   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Fprintf(ctx.Out, "✓ BambooHR API: OK\n")
	}

	if p := logger.Path(); p != "" {
		fmt.Fprintf(ctx.Out, "ℹ Run log: %s\n", p)
	}

	fmt.Fprintln(ctx.Out)
	if hasError {
		fmt.Fprintln(ctx.Out, "Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}

	fmt.Fprintln(ctx.Out, "All diagnostics passed!")
	return nil
}

func checkKeyring() error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	if _, err := keyring.GetAPIKey(); err != nil {
		return fmt.Errorf("keyring is available but holds no API key: %w", err)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context, cfg config.Config) (time.Time, error) {
	now := ctx.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return time.Time{}, fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	if cfg.Timezone == "" {
		settings, err := ctx.Settings()
		if err != nil {
			return time.Time{}, err
		}
		cfg = settings
	}
	return ctx.Today(cfg.Timezone)
}

// checkAPI reads today's timesheet entries, which needs both valid
// credentials and a matching employee id.
func checkAPI(ctx *cli.Context, cfg config.Config, today time.Time) error {
	client := bamboo.New(cfg.Client())
	if _, err := client.TimesheetEntries(ctx.Ctx, today, today); err != nil {
		return err
	}
	return nil
}

package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/punchclock/internal/bamboo"
	"github.com/julianstephens/punchclock/internal/config"
	"github.com/julianstephens/punchclock/internal/logger"
	"github.com/julianstephens/punchclock/internal/period"
	"github.com/julianstephens/punchclock/internal/timesheet"
	"github.com/julianstephens/punchclock/internal/utils"
)

// Context is handed to every command's Run method.
type Context struct {
	Ctx context.Context
	// Flags holds values given on the command line or through the environment.
	Flags      config.Config
	ConfigPath string
	RunID      string
	Out        io.Writer

	// Confirm asks a yes/no question before anything is changed remotely.
	Confirm func(title, description string) (bool, error)
	// PromptSecret asks for a value without echoing it.
	PromptSecret func(title string) (string, error)
	// Now reports the current time; today is taken from it in the configured timezone.
	Now func() time.Time
}

func NewContext(ctx context.Context, flags config.Config, configPath string) *Context {
	return &Context{
		Ctx:          ctx,
		Flags:        flags,
		ConfigPath:   configPath,
		RunID:        uuid.NewString(),
		Out:          os.Stdout,
		Confirm:      confirm,
		PromptSecret: promptSecret,
		Now:          time.Now,
	}
}

// Settings merges the config file and flags without requiring credentials.
func (c *Context) Settings() (config.Config, error) {
	file, err := config.LoadFile(c.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	return file.Merge(c.Flags).WithDefaults(), nil
}

// Config resolves and validates the full configuration. It fails before any
// network activity when credentials are missing.
func (c *Context) Config() (config.Config, error) {
	return config.Resolve(c.Flags, c.ConfigPath)
}

// Today returns the current date in the configured timezone.
func (c *Context) Today(timezone string) (time.Time, error) {
	loc, err := utils.LoadLocation(timezone)
	if err != nil {
		return time.Time{}, err
	}
	return utils.DateOf(c.Now().In(loc)), nil
}

// ResolvePeriod turns the positional period arguments into a date range.
func (c *Context) ResolvePeriod(cfg config.Config, lastDay int, startDate string) (period.Period, error) {
	today, err := c.Today(cfg.Timezone)
	if err != nil {
		return period.Period{}, err
	}
	return period.Resolve(today, lastDay, startDate)
}

// Submitter builds the BambooHR client and submitter for cfg.
func (c *Context) Submitter(cfg config.Config, reporter timesheet.Reporter) (*timesheet.Submitter, error) {
	policy, err := timesheet.ParseCheckPolicy(cfg.OnCheckFailure)
	if err != nil {
		return nil, err
	}

	log := logger.With("run", c.RunID)
	log.Info("run configured", "employee", cfg.EmployeeID, "base_url", cfg.BaseURL, "policy", policy)

	return timesheet.New(
		bamboo.New(cfg.Client()),
		timesheet.WithCheckPolicy(policy),
		timesheet.WithReporter(reporter),
		timesheet.WithLogger(log),
	), nil
}

func confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Continue").
				Negative("Cancel").
				Value(&ok),
		),
	).WithAccessible(os.Getenv("ACCESSIBLE") != "").Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

func promptSecret(title string) (string, error) {
	var value string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				EchoMode(huh.EchoModePassword).
				Value(&value),
		),
	).WithAccessible(os.Getenv("ACCESSIBLE") != "").Run()
	return value, err
}

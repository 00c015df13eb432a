package main

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/punchclock/internal/cli"
	"github.com/julianstephens/punchclock/internal/cli/system"
	"github.com/julianstephens/punchclock/internal/cli/timesheets"
	"github.com/julianstephens/punchclock/internal/config"
	"github.com/julianstephens/punchclock/internal/constants"
	"github.com/julianstephens/punchclock/internal/errors"
	"github.com/julianstephens/punchclock/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"YAML config file path." type:"path" default:"${config_path}"`
	Debug   bool   `help:"Mirror log output to stderr at debug level."`

	EmployeeID        string        `help:"BambooHR employee id." env:"${env_employee_id}"`
	APIKey            string        `name:"api-key" help:"BambooHR API key. Falls back to the OS keyring." env:"${env_api_key}"`
	BaseURL           string        `name:"base-url" help:"BambooHR API base URL." env:"${env_base_url}"`
	Timeout           time.Duration `help:"Timeout for each API request."`
	RequestsPerSecond *float64      `help:"Maximum API requests per second (0 for no limit, default ${default_rps})."`
	OnCheckFailure    string        `help:"What a failed read check means: fail-open counts it as negative, fail-closed skips the day."`
	Timezone          string        `help:"IANA timezone used to decide what today is." env:"${env_timezone}"`

	Clock   timesheets.ClockCmd  `cmd:"" help:"Clock every workday of the period." default:"withargs"`
	Remove  timesheets.RemoveCmd `cmd:"" help:"Remove every timesheet entry of the period."`
	Period  timesheets.PeriodCmd `cmd:"" help:"Show the period and workdays that would be clocked."`
	Doctor  system.DoctorCmd     `cmd:"" help:"Check configuration, keyring and API access."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the API key in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored API key, masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the API key from the OS keyring."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check whether the OS keyring is usable." default:"1"`
	} `cmd:"" help:"Manage the API key in the OS keyring."`
}

func main() {
	// A missing .env is normal; everything can come from the environment.
	_ = godotenv.Load()

	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Fill in a BambooHR timesheet for a whole period, skipping days off and holidays."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":         constants.Version,
			"config_path":     config.ExpandHome(constants.DefaultConfigPath),
			"env_employee_id": constants.EnvEmployeeID,
			"env_api_key":     constants.EnvAPIKey,
			"env_base_url":    constants.EnvBaseURL,
			"env_timezone":    constants.EnvTimezone,
			"default_rps":     strconv.FormatFloat(constants.DefaultRequestsPerSecond, 'g', -1, 64),
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(CLI.Config)}); err != nil {
		errors.Report(os.Stderr, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	flags := config.Config{
		EmployeeID:        CLI.EmployeeID,
		APIKey:            CLI.APIKey,
		BaseURL:           CLI.BaseURL,
		Timezone:          CLI.Timezone,
		Timeout:           CLI.Timeout,
		RequestsPerSecond: CLI.RequestsPerSecond,
		OnCheckFailure:    CLI.OnCheckFailure,
	}
	appCtx := cli.NewContext(ctx, flags, CLI.Config)
	logger.Info("starting", "command", kctx.Command(), "run", appCtx.RunID, "version", constants.Version)

	if err := kctx.Run(appCtx); err != nil {
		stop()
		if stderrors.Is(err, config.ErrMissing) {
			errors.Fatal(err,
				"Please set it in your .env file, the environment, or the config file.",
				"The API key can also be stored with: punchclock keyring set",
			)
		}
		errors.Fatal(err)
	}
}

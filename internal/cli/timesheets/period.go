package timesheets

import (
	"github.com/julianstephens/punchclock/internal/cli"
	"github.com/julianstephens/punchclock/internal/report"
)

// PeriodCmd prints the resolved period and its workdays. It needs no
// credentials and never contacts BambooHR.
type PeriodCmd struct {
	LastDay   int    `arg:"" optional:"" help:"Last day of the period (0 or omitted means end of month)."`
	StartDate string `arg:"" optional:"" help:"First day of the period as DD-MM-YYYY. Defaults to the current period."`
}

func (cmd *PeriodCmd) Run(ctx *cli.Context) error {
	cfg, err := ctx.Settings()
	if err != nil {
		return err
	}
	per, err := ctx.ResolvePeriod(cfg, cmd.LastDay, cmd.StartDate)
	if err != nil {
		return err
	}

	report.New(ctx.Out).Workdays(per)
	return nil
}

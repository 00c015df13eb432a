package timesheets

import (
	"fmt"

	"github.com/julianstephens/punchclock/internal/cli"
	"github.com/julianstephens/punchclock/internal/report"
)

// ClockCmd clocks every workday of a period.
type ClockCmd struct {
	LastDay   int    `arg:"" optional:"" help:"Last day of the period (0 or omitted means end of month)."`
	StartDate string `arg:"" optional:"" help:"First day of the period as DD-MM-YYYY. Defaults to the current period."`
	Yes       bool   `short:"y" help:"Do not ask for confirmation."`
}

func (cmd *ClockCmd) Run(ctx *cli.Context) error {
	cfg, err := ctx.Config()
	if err != nil {
		return err
	}

	per, err := ctx.ResolvePeriod(cfg, cmd.LastDay, cmd.StartDate)
	if err != nil {
		return err
	}

	p := report.New(ctx.Out)
	p.Banner("CLOCKED", per)

	if !cmd.Yes {
		ok, err := ctx.Confirm("Clock this period?", per.String())
		if err != nil {
			return fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			fmt.Fprintln(ctx.Out, "Cancelled, nothing was submitted")
			return nil
		}
	}

	sub, err := ctx.Submitter(cfg, p)
	if err != nil {
		return err
	}

	summary, err := sub.ClockPeriod(ctx.Ctx, per.Workdays())
	p.Summary(summary)
	return err
}

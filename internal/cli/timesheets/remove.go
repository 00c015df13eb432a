package timesheets

import (
	"fmt"

	"github.com/julianstephens/punchclock/internal/cli"
	"github.com/julianstephens/punchclock/internal/report"
)

// RemoveCmd deletes every timesheet entry of a period.
type RemoveCmd struct {
	LastDay   int    `arg:"" optional:"" help:"Last day of the period (0 or omitted means end of month)."`
	StartDate string `arg:"" optional:"" help:"First day of the period as DD-MM-YYYY. Defaults to the current period."`
	Yes       bool   `short:"y" help:"Do not ask for confirmation."`
}

func (cmd *RemoveCmd) Run(ctx *cli.Context) error {
	cfg, err := ctx.Config()
	if err != nil {
		return err
	}

	per, err := ctx.ResolvePeriod(cfg, cmd.LastDay, cmd.StartDate)
	if err != nil {
		return err
	}

	p := report.New(ctx.Out)
	p.Banner("REMOVED", per)

	if !cmd.Yes {
		ok, err := ctx.Confirm("Remove all entries of this period?", per.String())
		if err != nil {
			return fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			fmt.Fprintln(ctx.Out, "Cancelled, nothing was removed")
			return nil
		}
	}

	sub, err := ctx.Submitter(cfg, p)
	if err != nil {
		return err
	}

	out, err := sub.RemoveEntries(ctx.Ctx, per.Start, per.End)
	if err != nil {
		return err
	}
	p.Removal(per, out)
	if out.Failed {
		return fmt.Errorf("removal of %d entries was rejected with status code %d", len(out.IDs), out.StatusCode)
	}
	return nil
}

package tracking

import (
	"fmt"

	"github.com/julianstephens/smokefree/internal/cli"
)

type HealthCmd struct {
	All bool `short:"a" help:"Show every milestone, not just the next few."`
}

// upcoming is how many unreached milestones are shown without --all
const upcoming = 3

func (c *HealthCmd) Run(ctx *cli.Context) error {
	report, err := ctx.Tracker.HealthProgress()
	if err != nil {
		return cli.NotOnboarded(err)
	}

	if report.SetbackMinutes > 0 {
		fmt.Printf("Recovery set back %s by cigarettes smoked since quitting.\n\n", cli.FormatMinutes(report.SetbackMinutes))
	}

	pending := 0
	for _, s := range report.Timeline {
		if s.Complete {
			fmt.Printf("✓ %-10s %s\n", s.Label, s.Benefit)
			continue
		}
		if !c.All && pending == upcoming {
			break
		}
		fmt.Printf("  %-10s %s %5.1f%%  %s\n", s.Label, cli.Bar(s.Percent, 20), s.Percent, s.Benefit)
		if pending == 0 && s.Action != "" {
			fmt.Printf("             Tip: %s\n", s.Action)
		}
		pending++
	}
	return nil
}

package tracking

import (
	"fmt"

	"github.com/julianstephens/smokefree/internal/cli"
)

type ResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		fmt.Println("⚠️  This deletes your profile, craving log and achievements.")
		ok, err := cli.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Tracker.Reset(); err != nil {
		return err
	}

	fmt.Println("✓ All tracking data cleared.")
	fmt.Println("  Run 'smokefree onboard' to start a new quit attempt.")
	return nil
}

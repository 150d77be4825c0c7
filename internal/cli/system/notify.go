package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/smokefree/internal/achievements"
	"github.com/julianstephens/smokefree/internal/calculator"
	"github.com/julianstephens/smokefree/internal/cli"
	"github.com/julianstephens/smokefree/internal/health"
	"github.com/julianstephens/smokefree/internal/tracker"
)

// NotifyCmd is run periodically by the tray helper or cron. It unlocks any
// achievements that became due and announces health milestones reached
// within the last Window.
type NotifyCmd struct {
	DryRun bool          `help:"Print notifications to stdout instead of sending them."`
	Window time.Duration `help:"Announce milestones reached within this long ago." default:"1m"`
}

func (c *NotifyCmd) Validate() error {
	if c.Window < 0 {
		return fmt.Errorf("--window must not be negative (got %s)", c.Window)
	}
	return nil
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if !ctx.Config.Notifications.Enabled && !c.DryRun {
		return nil
	}

	var messages [][2]string

	unlocked, err := ctx.Tracker.EvaluateAchievements()
	if err != nil {
		if errors.Is(err, tracker.ErrNotOnboarded) {
			if c.DryRun {
				fmt.Println("No quit attempt recorded.")
			}
			return nil
		}
		return err
	}
	for _, r := range unlocked {
		if def, ok := achievements.Lookup(r.ID); ok {
			messages = append(messages, [2]string{"Achievement unlocked", def.Title})
		}
	}

	reached, err := c.milestonesReached(ctx)
	if err != nil {
		return err
	}
	for _, m := range reached {
		messages = append(messages, [2]string{"Health milestone: " + m.Label, m.Benefit})
	}

	for _, msg := range messages {
		if c.DryRun {
			fmt.Printf("[DryRun] %s: %s\n", msg[0], msg[1])
			continue
		}
		nctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := ctx.Notifier.Notify(nctx, msg[0], msg[1]); err != nil {
			fmt.Printf("Failed to send notification: %v\n", err)
		}
		cancel()
	}
	return nil
}

// milestonesReached returns the milestones completed now but not Window ago
func (c *NotifyCmd) milestonesReached(ctx *cli.Context) ([]health.Milestone, error) {
	m, err := ctx.Tracker.DerivedMetrics()
	if err != nil {
		return nil, err
	}
	smoked := m.Projection.CigarettesSmoked

	now := ctx.Tracker.Now()
	current := health.Progress(m.Elapsed, smoked)
	earlier := health.Progress(calculator.Elapsed(m.Profile.StartDate, now.Add(-c.Window)), smoked)

	return current.Completed[min(len(earlier.Completed), len(current.Completed)):], nil
}

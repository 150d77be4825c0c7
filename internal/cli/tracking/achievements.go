package tracking

import (
	"fmt"

	"github.com/julianstephens/smokefree/internal/cli"
)

type AchievementsCmd struct{}

func (c *AchievementsCmd) Run(ctx *cli.Context) error {
	unlocked, err := ctx.Tracker.EvaluateAchievements()
	if err != nil {
		return cli.NotOnboarded(err)
	}
	ctx.Announce(unlocked)

	statuses, err := ctx.Tracker.AchievementProgress()
	if err != nil {
		return err
	}

	loc := ctx.Tracker.Location()
	for _, s := range statuses {
		if s.Unlocked {
			fmt.Printf("🏆 %-18s %s (unlocked %s)\n", s.Title, s.Description, s.UnlockedAt.In(loc).Format("2006-01-02"))
			continue
		}
		fmt.Printf("🔒 %-18s %s %3.0f%%  %s\n", s.Title, cli.Bar(s.Percent, 20), s.Percent, s.Description)
	}
	return nil
}

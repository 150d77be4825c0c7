package tracking

import (
	"fmt"

	"github.com/julianstephens/smokefree/internal/cli"
)

// StatusCmd records today's session and prints the dashboard
type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	_, unlocked, err := ctx.Tracker.RecordLogin()
	if err != nil {
		return cli.NotOnboarded(err)
	}

	m, err := ctx.Tracker.DerivedMetrics()
	if err != nil {
		return err
	}
	report, err := ctx.Tracker.HealthProgress()
	if err != nil {
		return err
	}
	summary, err := ctx.Tracker.Summary()
	if err != nil {
		return err
	}

	p := m.Profile
	cur := ctx.Currency(p)
	loc := ctx.Tracker.Location()

	if p.Name != "" {
		fmt.Printf("Hi %s!\n", p.Name)
	}
	fmt.Printf("Smoke-free for %s (since %s)\n\n", cli.FormatElapsed(m.Elapsed), p.StartDate.In(loc).Format("2006-01-02 15:04"))
	fmt.Printf("  %-20s %s\n", "Cigarettes avoided", cli.FormatCount(m.Projection.CigarettesAvoided, m.Elapsed))
	fmt.Printf("  %-20s %s\n", "Money saved", cli.FormatMoney(cur, m.Projection.MoneySaved))
	if m.Projection.CigarettesSmoked > 0 {
		fmt.Printf("  %-20s %d (%s before slips)\n", "Cigarettes smoked", m.Projection.CigarettesSmoked,
			cli.FormatMoney(cur, m.Projection.GrossMoneySaved))
	}
	fmt.Printf("  %-20s %d days (best %d)\n", "Login streak", p.StreakCount, p.LongestStreak)
	fmt.Printf("  %-20s %d of %d (%.0f%%)\n", "Cravings managed", summary.Managed, summary.Total, summary.SuccessRate)

	if next := report.Next; next != nil {
		fmt.Printf("  %-20s %s: %s %s %.1f%%\n", "Next milestone", next.Label, next.Benefit, cli.Bar(next.Percent, 20), next.Percent)
	} else {
		fmt.Printf("  %-20s all reached\n", "Health milestones")
	}

	if len(unlocked) > 0 {
		fmt.Println()
		ctx.Announce(unlocked)
	}
	return nil
}

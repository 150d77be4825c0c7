package tracking

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/smokefree/internal/cli"
	"github.com/julianstephens/smokefree/internal/constants"
	"github.com/julianstephens/smokefree/internal/models"
)

type CravingCmd struct {
	Log   CravingLogCmd   `cmd:"" help:"Log a craving." default:"1"`
	List  CravingListCmd  `cmd:"" help:"List logged cravings."`
	Chart CravingChartCmd `cmd:"" help:"Chart cravings per day."`
}

type CravingLogCmd struct {
	Trigger   string `short:"t" help:"What triggered the craving."`
	Intensity int    `short:"n" help:"Intensity: 1 mild, 2 moderate, 3 strong." default:"2"`
	GaveIn    bool   `name:"gave-in" help:"You smoked."`
	Smoked    int    `help:"Cigarettes smoked, with --gave-in." default:"1"`
	Coping    string `help:"What you did to get through it."`
	At        string `help:"When it happened (RFC3339). Defaults to now."`
}

func (c *CravingLogCmd) Validate() error {
	if c.Intensity < constants.MinIntensity || c.Intensity > constants.MaxIntensity {
		return fmt.Errorf("intensity must be between %d and %d", constants.MinIntensity, constants.MaxIntensity)
	}
	if c.GaveIn && c.Smoked < 1 {
		return fmt.Errorf("--smoked must be at least 1")
	}
	if c.At != "" {
		if _, err := time.Parse(time.RFC3339, c.At); err != nil {
			return fmt.Errorf("invalid --at %q, use RFC3339 (e.g. 2026-01-02T15:04:05Z)", c.At)
		}
	}
	return nil
}

func (c *CravingLogCmd) Run(ctx *cli.Context) error {
	event := models.CravingEvent{
		Trigger:        c.Trigger,
		Intensity:      models.Intensity(c.Intensity),
		GaveIn:         c.GaveIn,
		CopingStrategy: c.Coping,
	}
	if c.GaveIn {
		event.CigarettesSmoked = c.Smoked
	}
	if c.At != "" {
		// Validate has already checked the format
		event.Timestamp, _ = time.Parse(time.RFC3339, c.At)
	}

	saved, unlocked, err := ctx.Tracker.AppendCraving(event)
	if err != nil {
		return cli.NotOnboarded(err)
	}

	if saved.GaveIn {
		setback := saved.CigarettesSmoked * constants.SetbackMinutesPerCigarette
		fmt.Printf("Logged %d cigarette(s) after a %s craving (%s).\n", saved.CigarettesSmoked, saved.Intensity, saved.Trigger)
		fmt.Printf("Recovery set back %s. A slip is not a failure, keep going.\n", cli.FormatMinutes(setback))
	} else {
		fmt.Printf("✓ Resisted a %s craving (%s). Well done!\n", saved.Intensity, saved.Trigger)
	}
	ctx.Announce(unlocked)
	return nil
}

type CravingListCmd struct {
	Limit int `short:"l" help:"Show at most this many, newest first. 0 shows all." default:"20"`
}

func (c *CravingListCmd) Run(ctx *cli.Context) error {
	events, err := ctx.Tracker.Cravings()
	if err != nil {
		return cli.NotOnboarded(err)
	}
	if len(events) == 0 {
		fmt.Println("No cravings logged yet.")
		return nil
	}

	loc := ctx.Tracker.Location()
	shown := 0
	fmt.Printf("%-16s  %-20s  %-9s  %s\n", "WHEN", "TRIGGER", "INTENSITY", "OUTCOME")
	for i := len(events) - 1; i >= 0; i-- {
		if c.Limit > 0 && shown == c.Limit {
			break
		}
		e := events[i]
		outcome := "resisted"
		if e.GaveIn {
			outcome = fmt.Sprintf("smoked %d", e.CigarettesSmoked)
		}
		fmt.Printf("%-16s  %-20s  %-9s  %s\n", e.Timestamp.In(loc).Format("2006-01-02 15:04"), e.Trigger, e.Intensity, outcome)
		shown++
	}
	if shown < len(events) {
		fmt.Printf("\n%d of %d shown\n", shown, len(events))
	}
	return nil
}

type CravingChartCmd struct {
	Days int `short:"d" help:"Number of most recent days to chart." default:"14"`
}

func (c *CravingChartCmd) Run(ctx *cli.Context) error {
	series, err := ctx.Tracker.ChartSeries()
	if err != nil {
		return cli.NotOnboarded(err)
	}

	labels, totals, managed := series.Labels, series.Totals, series.Managed
	if c.Days > 0 && len(labels) > c.Days {
		n := len(labels) - c.Days
		labels, totals, managed = labels[n:], totals[n:], managed[n:]
	}

	peak := 1
	for _, t := range totals {
		peak = max(peak, t)
	}

	fmt.Println("Cravings per day (█ resisted, ▒ gave in)")
	for i, label := range labels {
		width := totals[i] * 40 / peak
		resisted := 0
		if totals[i] > 0 {
			resisted = managed[i] * width / totals[i]
		}
		fmt.Printf("%s  %-40s %d\n", label, strings.Repeat("█", resisted)+strings.Repeat("▒", width-resisted), totals[i])
	}
	return nil
}

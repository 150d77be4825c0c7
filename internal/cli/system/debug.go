package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/smokefree/internal/cli"
	"github.com/julianstephens/smokefree/internal/logger"
)

type DebugCmd struct {
	DBPath  DebugDBPathCmd  `cmd:"" name:"db-path" help:"Show storage and log paths."`
	Dump    DebugDumpCmd    `cmd:"" help:"Dump all stored records as JSON."`
	Metrics DebugMetricsCmd `cmd:"" help:"Dump the derived metrics as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{
		"storage": ctx.Store.GetConfigPath(),
		"log":     logger.Path(),
	})
}

type DebugDumpCmd struct{}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Tracker.Profile()
	if err != nil {
		return cli.NotOnboarded(err)
	}
	cravings, err := ctx.Store.GetCravings()
	if err != nil {
		return fmt.Errorf("failed to read cravings: %w", err)
	}
	unlocked, err := ctx.Store.GetAchievements()
	if err != nil {
		return fmt.Errorf("failed to read achievements: %w", err)
	}

	return printJSON(map[string]any{
		"profile":      profile,
		"cravings":     cravings,
		"achievements": unlocked,
	})
}

type DebugMetricsCmd struct{}

func (cmd *DebugMetricsCmd) Run(ctx *cli.Context) error {
	m, err := ctx.Tracker.DerivedMetrics()
	if err != nil {
		return cli.NotOnboarded(err)
	}
	report, err := ctx.Tracker.HealthProgress()
	if err != nil {
		return err
	}

	return printJSON(map[string]any{
		"elapsed":         m.Elapsed,
		"projection":      m.Projection,
		"setback_minutes": report.SetbackMinutes,
		"milestones_done": len(report.Completed),
	})
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

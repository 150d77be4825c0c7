package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/smokefree/internal/achievements"
	"github.com/julianstephens/smokefree/internal/backup"
	"github.com/julianstephens/smokefree/internal/cli"
	"github.com/julianstephens/smokefree/internal/storage"
	"github.com/julianstephens/smokefree/internal/storage/postgres"
	"github.com/julianstephens/smokefree/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name     string
	run      func(*cli.Context) error
	gatesDB  bool // failure skips the checks that need the store
	needsDB  bool
	warnOnly bool
}

var checks = []check{
	{name: "Storage reachable", run: checkStoreReachable, gatesDB: true},
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Data validation", run: checkValidation, needsDB: true},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	reachable := true

	for _, c := range checks {
		if c.needsDB && !reachable {
			fmt.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
			if c.gatesDB {
				reachable = false
			}
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, err := ctx.Store.GetProfile(); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to read profile: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil
	}
	st, err := m.MigrationStatus()
	if err != nil {
		return err
	}
	if len(st.Pending) > 0 {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'smokefree migrate')", st.Current, st.Latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*postgres.Store); ok {
		return nil
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'smokefree backup create'")
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	p, err := ctx.Store.GetProfile()
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	events, err := ctx.Store.GetCravings()
	if err != nil {
		return fmt.Errorf("failed to read cravings: %w", err)
	}
	unlocked, err := ctx.Store.GetAchievements()
	if err != nil {
		return fmt.Errorf("failed to read achievements: %w", err)
	}

	var known []string
	for _, d := range achievements.Catalog() {
		known = append(known, d.ID)
	}

	result := validation.New().ValidateState(p, events, unlocked, known)
	if result.HasIssues() {
		return errors.New(result.FormatReport())
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	if _, err := ctx.Config.Location(); err != nil {
		return err
	}
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

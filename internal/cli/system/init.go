package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/smokefree/internal/cli"
	"github.com/julianstephens/smokefree/internal/storage"
	"github.com/julianstephens/smokefree/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Delete all existing data before initialization."`
	Source string `help:"Store path or PostgreSQL connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.wipe(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized smokefree storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyFrom(ctx); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		fmt.Println("Copy completed successfully!")
	}
	return nil
}

func (c *InitCmd) wipe(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*postgres.Store); ok {
		if err := ctx.Store.Init(); err != nil {
			return err
		}
		if err := ctx.Store.Reset(); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
		fmt.Println("Cleared existing PostgreSQL data")
		return nil
	}

	path := ctx.Store.GetConfigPath()
	if c.Source != "" {
		absPath, err1 := filepath.Abs(path)
		absSource, err2 := filepath.Abs(c.Source)
		if err1 == nil && err2 == nil && absPath == absSource {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", path)
		}
	}

	if _, err := os.Stat(path); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing store: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to delete existing store: %w", err)
		}
		fmt.Printf("Deleted existing store at: %s\n", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing store: %w", err)
	}
	return nil
}

func (c *InitCmd) copyFrom(ctx *cli.Context) error {
	if _, err := ctx.Store.GetProfile(); err == nil {
		return errors.New("destination already holds a quit attempt; use --force to replace it")
	}

	src, err := cli.OpenStore(cli.DetectDriver(c.Source), c.Source, false)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source store: %w", err)
	}
	defer src.Close()

	profile, err := src.GetProfile()
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Println("  Source has no quit attempt, nothing to copy")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read source profile: %w", err)
	}

	fmt.Println("  Copying profile...")
	if err := ctx.Store.SaveProfile(profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	fmt.Println("  Copying cravings...")
	cravings, err := src.GetCravings()
	if err != nil {
		return fmt.Errorf("failed to read source cravings: %w", err)
	}
	for _, e := range cravings {
		if err := ctx.Store.AppendCraving(e, profile); err != nil {
			return fmt.Errorf("failed to add craving %s: %w", e.ID, err)
		}
	}
	fmt.Printf("    Copied %d cravings\n", len(cravings))

	fmt.Println("  Copying achievements...")
	unlocked, err := src.GetAchievements()
	if err != nil {
		return fmt.Errorf("failed to read source achievements: %w", err)
	}
	if len(unlocked) > 0 {
		if err := ctx.Store.AddAchievements(unlocked...); err != nil {
			return fmt.Errorf("failed to add achievements: %w", err)
		}
	}
	fmt.Printf("    Copied %d achievements\n", len(unlocked))

	return nil
}

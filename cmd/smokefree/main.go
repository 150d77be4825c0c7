package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/smokefree/internal/cli"
	"github.com/julianstephens/smokefree/internal/cli/backups"
	"github.com/julianstephens/smokefree/internal/cli/system"
	"github.com/julianstephens/smokefree/internal/cli/tracking"
	"github.com/julianstephens/smokefree/internal/config"
	"github.com/julianstephens/smokefree/internal/constants"
	"github.com/julianstephens/smokefree/internal/errors"
	"github.com/julianstephens/smokefree/internal/logger"
	"github.com/julianstephens/smokefree/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Path to the TOML config file." default:"${config_file}"`
	DB      string `name:"db" help:"Store path (.db or .json) or PostgreSQL connection string, overriding the config file. PostgreSQL passwords must NOT be embedded; use the keyring, SMOKEFREE_DB_CONNECTION or .pgpass."`
	Debug   bool   `help:"Log debug output to stderr."`

	Init         system.InitCmd           `cmd:"" help:"Initialize smokefree storage."`
	Migrate      system.MigrateCmd        `cmd:"" help:"Run database migrations."`
	Doctor       system.DoctorCmd         `cmd:"" help:"Run health checks and diagnostics."`
	Tui          system.TuiCmd            `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Onboard      tracking.OnboardCmd      `cmd:"" help:"Start a quit attempt."`
	Status       tracking.StatusCmd       `cmd:"" help:"Show your progress and record today's check-in."`
	Craving      tracking.CravingCmd      `cmd:"" help:"Log and review cravings."`
	Health       tracking.HealthCmd       `cmd:"" help:"Show health recovery milestones."`
	Achievements tracking.AchievementsCmd `cmd:"" help:"Show achievements."`
	Reset        tracking.ResetCmd        `cmd:"" help:"Delete all tracking data."`
	DebugCmd     system.DebugCmd          `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Backup       struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show where the connection string comes from."`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Notify system.NotifyCmd `cmd:"" hidden:"" help:"Send due notifications (used internally)."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Quit smoking tracker: savings, health milestones, cravings and streaks"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": constants.DefaultConfigFile,
		},
	)

	configPath, err := config.ExpandPath(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(configPath),
		Level:     cfg.Logging.Level,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	command := ctx.Command()
	keyringCmd := strings.HasPrefix(command, "keyring")

	store, err := cli.ResolveStore(cfg, CLI.DB)
	if err != nil && !keyringCmd {
		errors.Fatal(err)
	}

	appCtx, err := cli.NewContext(store, cfg)
	if err != nil {
		errors.Fatal(err)
	}

	// Init and doctor handle their own loading; the keyring never touches the store
	if store != nil && !keyringCmd && !strings.HasPrefix(command, "init") && !strings.HasPrefix(command, "doctor") {
		if err := load(store); err != nil {
			errors.Fatal(err)
		}
	}
	if store != nil {
		defer store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		if store != nil {
			store.Close()
		}
		errors.Fatal(err)
	}
}

// load opens the store, creating it on first use
func load(store storage.Provider) error {
	err := store.Load()
	if !stderrors.Is(err, storage.ErrNotInitialized) {
		return err
	}
	logger.Info("Creating storage on first run", "path", store.GetConfigPath())
	return store.Init()
}

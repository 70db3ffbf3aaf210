package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/puffless/internal/cli"
	"github.com/julianstephens/puffless/internal/constants"
	perrors "github.com/julianstephens/puffless/internal/errors"
	"github.com/julianstephens/puffless/internal/logger"
	"github.com/julianstephens/puffless/internal/storage"
	"github.com/julianstephens/puffless/internal/tracker"
	"github.com/julianstephens/puffless/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path." type:"path" env:"PUFFLESS_CONFIG" default:"${config_path}"`
	Store   string `help:"Storage backend (sqlite or json)." env:"PUFFLESS_STORE" enum:"sqlite,json" default:"sqlite"`
	Verbose bool   `name:"debug" help:"Log debug output to stderr." env:"PUFFLESS_DEBUG"`

	Init       cli.InitCmd       `cmd:"" help:"Create your profile and quit plan."`
	Log        cli.LogCmd        `cmd:"" help:"Add puffs to today's count."`
	Craving    cli.CravingCmd    `cmd:"" help:"Record a craving."`
	NRT        cli.NRTCmd        `cmd:"" name:"nrt" help:"Record a nicotine replacement dose."`
	Today      cli.TodayCmd      `cmd:"" help:"Show today's progress."`
	Plan       cli.PlanCmd       `cmd:"" help:"Show the weekly reduction schedule."`
	Progress   cli.ProgressCmd   `cmd:"" help:"Show statistics and savings."`
	Milestones cli.MilestonesCmd `cmd:"" help:"Show unlocked milestones."`
	Settings   struct {
		Show cli.SettingsShowCmd `cmd:"" help:"Show profile and notification settings." default:"1"`
		Set  cli.SettingsSetCmd  `cmd:"" help:"Update notification settings."`
	} `cmd:"" help:"Manage settings."`
	Export cli.ExportCmd `cmd:"" help:"Export logs or cravings as CSV."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Reset    cli.ResetCmd    `cmd:"" help:"Delete all data."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate cli.ValidateCmd `cmd:"" help:"Check stored data for inconsistencies."`
	Debug    cli.DebugCmd    `cmd:"" help:"Debug commands for troubleshooting."`
	Notify   cli.NotifyCmd   `cmd:"" hidden:"" help:"Send due reminders and milestones (run from cron)."`
}

// loadEnv reads .env from the working directory and the config directory.
// Variables already set in the environment are kept.
func loadEnv() {
	configPath := os.Getenv(constants.EnvConfig)
	if configPath == "" {
		configPath = constants.DefaultConfigPath
	}
	candidates := []string{".env"}
	if expanded, err := utils.ExpandPath(configPath); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(expanded), ".env"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			fmt.Fprintln(os.Stderr, perrors.Formatf("failed to load %s: %v", path, err))
		}
	}
}

func main() {
	loadEnv()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Vape-free quit plan tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Verbose, ConfigDir: filepath.Dir(CLI.Config)}); err != nil {
		fmt.Fprintln(os.Stderr, perrors.Formatf("failed to initialize logger: %v", err))
	}

	store, err := storage.New(CLI.Store, CLI.Config)
	perrors.Fatal(err)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close store", "error", err)
		}
	}()

	appCtx := &cli.Context{
		Store:   store,
		Tracker: tracker.New(store),
	}

	// init creates the store itself
	if ctx.Command() != "init" {
		if err := store.Load(); err != nil {
			closeAndExit(store, perrors.WithHint(err, "run 'puffless init' to create your quit plan"))
		}
	}

	logger.Debug("Running command", "command", ctx.Command(), "store", CLI.Store, "path", CLI.Config)
	if err := ctx.Run(appCtx); err != nil {
		closeAndExit(store, err)
	}
}

// closeAndExit closes the store before Fatal exits, since deferred calls do not run.
func closeAndExit(store storage.Provider, err error) {
	if cerr := store.Close(); cerr != nil {
		logger.Warn("Failed to close store", "error", cerr)
	}
	perrors.Fatal(err)
}

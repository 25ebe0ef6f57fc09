package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/NewEra-cyber/studentplanner/internal/cli"
	"github.com/NewEra-cyber/studentplanner/internal/constants"
	apperrors "github.com/NewEra-cyber/studentplanner/internal/errors"
	"github.com/NewEra-cyber/studentplanner/internal/keyring"
	"github.com/NewEra-cyber/studentplanner/internal/logger"
	"github.com/NewEra-cyber/studentplanner/internal/scheduler"
	"github.com/NewEra-cyber/studentplanner/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store path (.db or .json), a PostgreSQL connection string, or 'postgres' to use the keyring-stored connection. PostgreSQL connection strings must NOT embed credentials; use the keyring, environment, or .pgpass." default:"~/.config/planner/planner.db"`
	User    string `short:"u" help:"User to operate on." default:"default"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init    cli.InitCmd `cmd:"" help:"Initialize planner storage."`
	Routine struct {
		Init cli.RoutineInitCmd `cmd:"" help:"Seed the default routine for every day of the week."`
		List cli.RoutineListCmd `cmd:"" help:"Show the default routine template."`
	} `cmd:"" help:"Manage the daily routine."`
	Activity struct {
		Add     cli.ActivityAddCmd     `cmd:"" help:"Add a new activity."`
		List    cli.ActivityListCmd    `cmd:"" help:"List activities."`
		Delete  cli.ActivityDeleteCmd  `cmd:"" help:"Delete an activity."`
		Restore cli.ActivityRestoreCmd `cmd:"" help:"Restore a deleted activity."`
	} `cmd:"" help:"Manage routine activities."`
	Timetable struct {
		Add    cli.TimetableAddCmd    `cmd:"" help:"Add a timetable entry (triggers adjustment)."`
		Edit   cli.TimetableEditCmd   `cmd:"" help:"Edit a timetable entry (triggers adjustment)."`
		List   cli.TimetableListCmd   `cmd:"" help:"List timetable entries."`
		Delete cli.TimetableDeleteCmd `cmd:"" help:"Delete a timetable entry (triggers adjustment)."`
	} `cmd:"" help:"Manage external timetable entries."`
	Adjust   cli.AdjustCmd   `cmd:"" help:"Re-plan a day around its timetable."`
	Day      cli.DayCmd      `cmd:"" help:"Show the merged schedule for a day."`
	Validate cli.ValidateCmd `cmd:"" help:"Check a day's schedule for conflicts."`
	Profile  struct {
		Show cli.ProfileShowCmd `cmd:"" help:"Show the user's profile." default:"1"`
		Set  cli.ProfileSetCmd  `cmd:"" help:"Update waking window or timezone."`
	} `cmd:"" help:"Manage the user profile."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a store backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the store from a backup."`
	} `cmd:"" help:"Manage store backups."`
	ConfigCmd struct {
		SetConnection    cli.ConfigSetConnectionCmd    `cmd:"" name:"set-connection" help:"Store a PostgreSQL connection string in the OS keyring."`
		DeleteConnection cli.ConfigDeleteConnectionCmd `cmd:"" name:"delete-connection" help:"Remove the stored connection string."`
	} `cmd:"" name:"config" help:"Manage application configuration."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Smart schedule adjuster: re-plans your routine around your timetable"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath := expandHome(CLI.Config)

	store, err := selectStore(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", apperrors.Format(err))
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: logDir(store, configPath),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	appCtx := &cli.Context{
		Store:     store,
		Scheduler: scheduler.New(store),
		UserID:    CLI.User,
	}

	// Every command except init expects an existing store. ctx.Command() is
	// the full command path ("config set-connection"), not just the leaf.
	if needsLoad(ctx.Command()) {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
		defer store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

// selectStore picks the storage backend from the config value: a JSON file, a
// PostgreSQL connection (inline or keyring-stored), or the default SQLite
// database.
func selectStore(config string) (storage.Provider, error) {
	switch {
	case config == "postgres":
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, fmt.Errorf("no connection string in keyring; store one with 'planner config set-connection'")
			}
			return nil, err
		}
		return storage.NewPostgresStore(connStr), nil

	case strings.HasPrefix(config, "postgres://"), strings.HasPrefix(config, "postgresql://"):
		if storage.HasEmbeddedCredentials(config) {
			return nil, fmt.Errorf("connection strings with embedded credentials are not allowed on the command line; " +
				"store the full string in the OS keyring with 'planner config set-connection', " +
				"or keep the password in the environment or ~/.pgpass")
		}
		return storage.NewPostgresStore(config), nil

	case strings.HasSuffix(config, ".json"):
		return storage.NewJSONStore(config), nil

	default:
		return storage.NewSQLiteStore(config), nil
	}
}

// logDir returns the directory logs live in: alongside a file-backed store,
// or the default config directory for PostgreSQL.
func logDir(store storage.Provider, configPath string) string {
	if _, ok := store.(*storage.PostgresStore); ok {
		return filepath.Dir(expandHome(constants.DefaultConfigPath))
	}
	return filepath.Dir(configPath)
}

func needsLoad(command string) bool {
	switch {
	case command == "init":
		return false
	case strings.HasPrefix(command, "config"):
		// keyring only, no store access
		return false
	case command == "routine list":
		// prints the built-in template
		return false
	}
	return true
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

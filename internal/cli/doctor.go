package cli

import (
	"fmt"
	"time"

	"github.com/NewEra-cyber/studentplanner/internal/backup"
	"github.com/NewEra-cyber/studentplanner/internal/migration"
	"github.com/NewEra-cyber/studentplanner/internal/storage"
	"github.com/NewEra-cyber/studentplanner/migrations"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	if err := checkStoreReachable(ctx); err != nil {
		fmt.Printf("FAIL  Storage reachable\n")
		fmt.Printf("      Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("OK    Storage reachable\n")
		storeReachable = true
	}

	if err := checkSchemaVersion(ctx); err != nil {
		fmt.Printf("FAIL  Schema version\n")
		fmt.Printf("      Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("OK    Schema version\n")
	}

	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("WARN  Backups present\n")
		fmt.Printf("      %v\n", err)
	} else {
		fmt.Printf("OK    Backups present\n")
	}

	if storeReachable {
		if err := checkDataIntegrity(ctx); err != nil {
			fmt.Printf("FAIL  Data integrity\n")
			fmt.Printf("      Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("OK    Data integrity\n")
		}
	} else {
		fmt.Printf("SKIP  Data integrity (storage not reachable)\n")
	}

	if err := checkClockSanity(); err != nil {
		fmt.Printf("FAIL  Clock sanity\n")
		fmt.Printf("      Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("OK    Clock sanity\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkSchemaVersion(ctx *Context) error {
	sqliteStore, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		// Only the SQLite backend carries a migration-managed schema
		return nil
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	runner := migration.NewRunner(db, migrations.FS)
	return runner.ValidateVersion()
}

func checkBackupsPresent(ctx *Context) error {
	if _, ok := ctx.Store.(*storage.PostgresStore); ok {
		// Postgres backups are the server operator's concern
		return nil
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'planner backup create'")
	}

	return nil
}

func checkDataIntegrity(ctx *Context) error {
	activities, err := ctx.Store.GetAllActivities(ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to get activities: %w", err)
	}

	seen := make(map[string]bool)
	for _, activity := range activities {
		if seen[activity.ID] {
			return fmt.Errorf("duplicate activity ID found: %s", activity.ID)
		}
		seen[activity.ID] = true

		if activity.DurationMin > 0 && activity.MinDurationMin > activity.DurationMin {
			return fmt.Errorf("activity %q has minimum duration above its duration", activity.Title)
		}
	}

	return nil
}

func checkClockSanity() error {
	now := time.Now()

	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	return nil
}

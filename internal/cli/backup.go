package cli

import (
	"fmt"
	"path/filepath"

	"github.com/NewEra-cyber/studentplanner/internal/backup"
	"github.com/NewEra-cyber/studentplanner/internal/storage"
)

func backupManager(ctx *Context) (*backup.Manager, error) {
	if _, ok := ctx.Store.(*storage.PostgresStore); ok {
		return nil, fmt.Errorf("file backups are not supported for the PostgreSQL backend; use pg_dump")
	}
	return backup.NewManager(ctx.Store.GetConfigPath()), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}

	path, err := mgr.CreateBackup()
	if err != nil {
		return err
	}

	fmt.Printf("Created backup: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}

	fmt.Printf("Backups in %s:\n", mgr.GetBackupDir())
	for _, info := range backups {
		fmt.Printf("  %s  %s  %d bytes\n", info.Timestamp.Format("2006-01-02 15:04"), filepath.Base(info.Path), info.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	File string `arg:"" help:"Backup filename to restore (as shown by 'backup list')."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}

	path := c.File
	if filepath.Dir(path) == "." {
		path = filepath.Join(mgr.GetBackupDir(), c.File)
	}

	if err := mgr.RestoreBackup(path); err != nil {
		return err
	}

	fmt.Printf("Restored store from %s\n", filepath.Base(path))
	return nil
}

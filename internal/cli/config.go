package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/NewEra-cyber/studentplanner/internal/keyring"
	"github.com/NewEra-cyber/studentplanner/internal/storage"
)

// ConfigSetConnectionCmd stores a database connection string in the OS keyring
type ConfigSetConnectionCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring"`
}

func (c *ConfigSetConnectionCmd) Run(ctx *Context) error {
	if !strings.HasPrefix(c.ConnectionString, "postgres://") &&
		!strings.HasPrefix(c.ConnectionString, "postgresql://") &&
		!strings.Contains(c.ConnectionString, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if storage.HasEmbeddedCredentials(c.ConnectionString) {
		// The keyring is encrypted, so embedded credentials are acceptable
		// here, unlike on the command line.
		fmt.Println("Note: the connection string contains embedded credentials.")
		fmt.Println("It will be stored as-is in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(c.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	fmt.Println("Connection string stored in OS keyring.")
	fmt.Println("You can now use 'planner --config postgres' to connect.")
	return nil
}

// ConfigDeleteConnectionCmd removes the stored connection string from the OS keyring
type ConfigDeleteConnectionCmd struct{}

func (c *ConfigDeleteConnectionCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}

	fmt.Println("Connection string deleted from OS keyring.")
	return nil
}

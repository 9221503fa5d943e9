package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/misterclayt0n/warrior/internal/config"
	"github.com/spf13/cobra"
)

var initSetupCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config and create the database with the starter machine",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			p, err := config.GetConfigPath()
			if err != nil {
				return fmt.Errorf("Failed to resolve config path: %w", err)
			}
			path = p
		}

		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			if err := config.Write(config.Default(), path); err != nil {
				return fmt.Errorf("Failed to write config: %w", err)
			}
			fmt.Printf("✅ Config written to %s\n", path)
		} else if err != nil {
			return err
		} else {
			fmt.Printf("Config already exists at %s\n", path)
		}

		// Opening seeds the state on a fresh database.
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		fmt.Printf("✅ Database ready at %s (%s)\n", a.cfg.DB.ConnectionString, a.store.Driver())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initSetupCmd)
}

package cmd

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/misterclayt0n/warrior/internal/outbox"
	"github.com/misterclayt0n/warrior/internal/storage"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [output-file]",
	Short: "Export all data to a JSON, TOML or YAML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		outputFile := storage.DefaultExportName(a.tracker.Today())
		if len(args) == 1 {
			outputFile = args[0]
		}

		if err := storage.ExportState(a.tracker.Snapshot(), outputFile); err != nil {
			return fmt.Errorf("error exporting data: %w", err)
		}

		fmt.Printf("✅ Data exported successfully to %s\n", outputFile)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace all data with the contents of an exported file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := storage.ImportState(args[0])
		if err != nil {
			return fmt.Errorf("Failed to read import: %w", err)
		}

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		ok, err := confirm("Replace all machines, sessions and workouts with " + args[0] + "?")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		report, err := a.tracker.Replace(cmd.Context(), st)
		if err != nil {
			return fmt.Errorf("Failed to import: %w", err)
		}

		fmt.Printf("✅ Imported %d machines and %d sessions\n", len(st.Machines), len(st.Sessions))
		if report.DiscardedActive != "" {
			fmt.Println("   The active workout referenced a missing workout and was dropped.")
		}
		return nil
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Save a snapshot of all data inside the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		key, err := a.store.Backup(cmd.Context(), a.tracker.Snapshot(), time.Now())
		if err != nil {
			return fmt.Errorf("Failed to save backup: %w", err)
		}
		fmt.Printf("✅ Backup saved as %s\n", key)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore [backup-key]",
	Short: "Restore a snapshot saved with backup (lists snapshots without an argument)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		if len(args) == 0 {
			keys, err := a.store.Backups(cmd.Context())
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				fmt.Println("No backups yet.")
			}
			for _, k := range keys {
				fmt.Println(k)
			}
			return nil
		}

		st, err := a.store.LoadBackup(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		ok, err := confirm("Replace all data with " + args[0] + "?")
		if err != nil || !ok {
			return err
		}
		if _, err := a.tracker.Replace(cmd.Context(), st); err != nil {
			return fmt.Errorf("Failed to restore: %w", err)
		}
		fmt.Printf("✅ Restored %s\n", args[0])
		return nil
	},
}

var watch bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Send queued events to the sync endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.store.Close()

		if a.drainer == nil {
			return fmt.Errorf("No sync endpoint configured (set [sync] endpoint or WARRIOR_SYNC_ENDPOINT)")
		}

		if watch {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			fmt.Printf("Draining every %s, Ctrl-C to stop\n", a.cfg.Sync.Interval.Duration)
			a.drainer.Kick()
			a.drainer.Run(ctx)
			return nil
		}

		pending := len(a.tracker.Pending())
		n, err := a.drainer.FlushNow(cmd.Context())
		var failure *outbox.SyncFailure
		switch {
		case errors.As(err, &failure):
			fmt.Printf("Sync failed, %d events kept for the next try: %v\n", failure.Events, failure.Err)
			return nil
		case err != nil:
			return err
		case !a.drainer.Online():
			fmt.Printf("Offline, %d events queued\n", pending)
		default:
			fmt.Printf("✅ Synced %d events\n", n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep draining in the foreground")
}

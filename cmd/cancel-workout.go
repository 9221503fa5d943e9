package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cancelWorkoutCmd = &cobra.Command{
	Use:   "cancel-workout",
	Short: "Discard the active workout without recording it",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		ok, err := confirm("Discard the active workout? Items already marked stay logged")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		if err := a.tracker.DiscardWorkout(cmd.Context()); err != nil {
			return fmt.Errorf("Failed to cancel workout: %w", err)
		}

		fmt.Println("✅ Workout cancelled")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cancelWorkoutCmd)
}

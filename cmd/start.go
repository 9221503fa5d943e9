package cmd

import (
	"fmt"

	"github.com/misterclayt0n/warrior/internal/progression"
	"github.com/spf13/cobra"
)

var startDate string

var startCmd = &cobra.Command{
	Use:   "start-workout [workout]",
	Short: "Start a workout from a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		w, err := a.tracker.FindWorkout(args[0])
		if err != nil {
			return err
		}

		active, err := a.tracker.StartWorkout(cmd.Context(), w.ID, startDate)
		if progression.IsEmptyWorkout(err) {
			return fmt.Errorf("Workout %s has no machines", w.Name)
		}
		if err != nil {
			return fmt.Errorf("Failed to start workout: %w", err)
		}

		fmt.Printf("✅ Started %s on %s with %d machines\n", active.WorkoutName, active.Date, len(active.Items))
		return printActive(a, active)
	},
}

func init() {
	// Registers the command as a subcommand of rootCmd.
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().StringVarP(&startDate, "date", "d", "", "Workout day (YYYY-MM-DD, default today)")
}

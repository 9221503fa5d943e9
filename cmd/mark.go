package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/misterclayt0n/warrior/internal/models"
	"github.com/misterclayt0n/warrior/internal/progression"
	"github.com/misterclayt0n/warrior/internal/utils"
	"github.com/spf13/cobra"
)

var markCmd = &cobra.Command{
	Use:   "mark [machine] [yes|no]",
	Short: "Mark a machine of the active workout",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := parseResult(args[1])
		if err != nil {
			return err
		}

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		m, err := a.tracker.FindMachine(args[0])
		if err != nil {
			return err
		}
		photo, err := utils.EncodePhoto(entryPhoto)
		if err != nil {
			return fmt.Errorf("Failed to read photo: %w", err)
		}

		var out progression.MarkOutcome
		err = withConfirmation(func(confirmed bool) error {
			out, err = a.tracker.MarkItem(cmd.Context(), m.ID, result, progression.ItemInput{
				Progress: entryProgress,
				Notes:    entryNotes,
				Photo:    photo,
				Confirm:  confirmed,
			})
			return err
		})
		switch {
		case progression.IsDuplicate(err):
			return fmt.Errorf("Only one YES per machine per day")
		case progression.IsNotFound(err):
			return fmt.Errorf("%s is not pending in an active workout", m.Name)
		case err != nil:
			return fmt.Errorf("Failed to mark machine: %w", err)
		}

		fmt.Printf("✅ %s %s\n", m.Name, resultLabel(result))
		if out.LeveledUp {
			celebrate(out.Message)
		}
		if out.WorkoutCompleted {
			celebrate(fmt.Sprintf("%s complete!", out.Record.WorkoutName))
			return nil
		}

		active, ok := a.tracker.ActiveWorkout()
		if ok {
			return printActive(a, active)
		}
		return nil
	},
}

var workoutStatusCmd = &cobra.Command{
	Use:   "workout-status",
	Short: "Show the active workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		active, ok := a.tracker.ActiveWorkout()
		if !ok {
			return fmt.Errorf("No active workout")
		}
		return printActive(a, active)
	},
}

func printActive(a *app, active models.ActiveWorkout) error {
	cyan := color.New(color.FgCyan).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Printf("\n%s %s · %s · %d left\n", cyan("Workout:"), active.WorkoutName, active.Date, active.Remaining())
	for i, it := range active.Items {
		m, err := a.tracker.FindMachine(it.MachineID)
		if err != nil {
			// Deleted after the workout started.
			m = models.Machine{ID: it.MachineID, Name: it.MachineID}
		}
		fmt.Printf("%s %s  %s\n", cyan(fmt.Sprintf("%d.", i+1)), yellow(m.Name), resultLabel(it.Result))
		if it.Result == models.ResultUnset {
			fmt.Printf("   %s\n", progression.SetupText(m.CurrentSetup))
		} else if it.Progress != "" {
			fmt.Printf("   %s\n", it.Progress)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(workoutStatusCmd)

	markCmd.Flags().StringVar(&entryNotes, "notes", "", "Notes")
	markCmd.Flags().StringVarP(&entryProgress, "progress", "p", "", "What you actually did")
	markCmd.Flags().StringVar(&entryPhoto, "photo", "", "Image file to attach")
}

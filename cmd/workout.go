package cmd

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/misterclayt0n/warrior/internal/utils"
	"github.com/spf13/cobra"
)

var (
	workoutMachines []string
	workoutFile     string
)

// resolveMachines maps machine names or ids to ids.
func resolveMachines(a *app, refs []string) ([]string, error) {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		m, err := a.tracker.FindMachine(ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, m.ID)
	}
	return ids, nil
}

var createWorkoutCmd = &cobra.Command{
	Use:   "create-workout [name]",
	Short: "Create a workout from machines (or from a TOML file)",
	Example: `  warrior create-workout "Push day" -m "Chest press" -m "Shoulder press"
  warrior create-workout --file workouts.toml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		type def struct {
			name string
			refs []string
		}
		var defs []def
		if workoutFile != "" {
			parsed, err := utils.ParseWorkoutsFromTOML(workoutFile)
			if err != nil {
				return fmt.Errorf("Invalid TOML format: %w", err)
			}
			for _, w := range parsed.Workouts {
				defs = append(defs, def{name: w.Name, refs: w.Machines})
			}
		} else {
			if len(args) != 1 {
				return fmt.Errorf("Workout name is required")
			}
			defs = append(defs, def{name: args[0], refs: workoutMachines})
		}

		for _, d := range defs {
			ids, err := resolveMachines(a, d.refs)
			if err != nil {
				return err
			}
			w, err := a.tracker.CreateWorkout(cmd.Context(), d.name, ids)
			if err != nil {
				return fmt.Errorf("Failed to create workout: %w", err)
			}
			fmt.Printf("✅ Created workout %s with %d machines\n", w.Name, len(w.MachineIDs))
		}
		return nil
	},
}

var renameWorkoutCmd = &cobra.Command{
	Use:   "rename-workout [workout] [new-name]",
	Short: "Rename a workout",
	Args:  cobra.ExactArgs(2),
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
		if err := a.tracker.RenameWorkout(cmd.Context(), w.ID, args[1]); err != nil {
			return fmt.Errorf("Failed to rename workout: %w", err)
		}
		fmt.Printf("✅ Renamed %s to %s\n", w.Name, args[1])
		return nil
	},
}

var assignWorkoutCmd = &cobra.Command{
	Use:   "assign-workout [workout] [machine...]",
	Short: "Replace the machines of a workout, in order",
	Args:  cobra.MinimumNArgs(2),
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
		ids, err := resolveMachines(a, args[1:])
		if err != nil {
			return err
		}
		if err := a.tracker.AssignMachines(cmd.Context(), w.ID, ids); err != nil {
			return fmt.Errorf("Failed to assign machines: %w", err)
		}
		fmt.Printf("✅ %s now has %d machines\n", w.Name, len(ids))
		return nil
	},
}

var moveMachineCmd = &cobra.Command{
	Use:   "move-machine [workout] [from] [to]",
	Short: "Move a machine inside a workout (1-based positions)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("Invalid position %q", args[1])
		}
		to, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("Invalid position %q", args[2])
		}

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		w, err := a.tracker.FindWorkout(args[0])
		if err != nil {
			return err
		}
		if err := a.tracker.MoveMachine(cmd.Context(), w.ID, from-1, to-1); err != nil {
			return fmt.Errorf("Failed to move machine: %w", err)
		}
		fmt.Println("✅ Workout reordered")
		return nil
	},
}

var reorderWorkoutsCmd = &cobra.Command{
	Use:   "reorder-workouts [workout...]",
	Short: "Set the order of the workout list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		ids := make([]string, 0, len(args))
		for _, ref := range args {
			w, err := a.tracker.FindWorkout(ref)
			if err != nil {
				return err
			}
			ids = append(ids, w.ID)
		}
		if err := a.tracker.ReorderWorkouts(cmd.Context(), ids); err != nil {
			return fmt.Errorf("Failed to reorder workouts: %w", err)
		}
		fmt.Println("✅ Workouts reordered")
		return nil
	},
}

var deleteWorkoutCmd = &cobra.Command{
	Use:   "delete-workout [workout]",
	Short: "Delete a workout template",
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
		err = withConfirmation(func(confirmed bool) error {
			return a.tracker.DeleteWorkout(cmd.Context(), w.ID, confirmed)
		})
		if err != nil {
			return fmt.Errorf("Failed to delete workout: %w", err)
		}
		fmt.Printf("✅ Deleted workout %s\n", w.Name)
		return nil
	},
}

var listWorkoutsCmd = &cobra.Command{
	Use:   "workouts",
	Short: "List workouts and their machines",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		names := make(map[string]string)
		for _, m := range a.tracker.Machines() {
			names[m.ID] = m.Name
		}

		bold := color.New(color.Bold).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()
		for i, w := range a.tracker.Workouts() {
			fmt.Printf("%d. %s  %s\n", i+1, bold(w.Name), faint(w.ID))
			for j, id := range w.MachineIDs {
				fmt.Printf("   %d) %s\n", j+1, names[id])
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createWorkoutCmd)
	rootCmd.AddCommand(renameWorkoutCmd)
	rootCmd.AddCommand(assignWorkoutCmd)
	rootCmd.AddCommand(moveMachineCmd)
	rootCmd.AddCommand(reorderWorkoutsCmd)
	rootCmd.AddCommand(deleteWorkoutCmd)
	rootCmd.AddCommand(listWorkoutsCmd)

	createWorkoutCmd.Flags().StringArrayVarP(&workoutMachines, "machine", "m", nil, "Machine name or id (repeatable, in order)")
	createWorkoutCmd.Flags().StringVarP(&workoutFile, "file", "f", "", "TOML file with [[workout]] definitions")
}

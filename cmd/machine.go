package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/misterclayt0n/warrior/internal/models"
	"github.com/misterclayt0n/warrior/internal/progression"
	"github.com/misterclayt0n/warrior/internal/utils"
	"github.com/spf13/cobra"
)

var (
	machineName    string
	machineStreak  int
	machineAuto    bool
	machineCurrent string
	machineNext    string
	machinePhoto   string
	machineFile    string
)

// setupFlag accepts rows separated by ";" or newlines.
func setupFlag(v string) ([]models.SetupLine, error) {
	return progression.ParseSetup(strings.ReplaceAll(v, ";", "\n"))
}

var addMachineCmd = &cobra.Command{
	Use:   "add-machine",
	Short: "Add a machine (or every [[machine]] of a TOML file)",
	Example: `  warrior add-machine --name "Leg press" --streak 3 \
    --current "9 plates|1|6|12;7 plates|2|6|12" --next "10 plates|1|6|12;8 plates|2|6|12"
  warrior add-machine --file machines.toml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		var inputs []progression.MachineInput
		if machineFile != "" {
			defs, err := utils.ParseMachinesFromTOML(machineFile)
			if err != nil {
				return fmt.Errorf("Invalid TOML format: %w", err)
			}
			for _, d := range defs.Machines {
				auto := true
				if d.AutoAdvance != nil {
					auto = *d.AutoAdvance
				}
				req := d.StreakRequirement
				if req == 0 {
					req = 3
				}
				inputs = append(inputs, progression.MachineInput{
					Name:              d.Name,
					StreakRequirement: req,
					AutoAdvance:       auto,
					CurrentSetup:      utils.ToSetup(d.CurrentSetup),
					NextSetup:         utils.ToSetup(d.NextSetup),
				})
			}
		} else {
			in, err := machineInputFromFlags()
			if err != nil {
				return err
			}
			inputs = append(inputs, in)
		}

		for _, in := range inputs {
			m, err := a.tracker.AddMachine(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("Failed to add machine %s: %w", in.Name, err)
			}
			fmt.Printf("✅ Added machine %s (%s)\n", m.Name, m.ID)
		}
		return nil
	},
}

func machineInputFromFlags() (progression.MachineInput, error) {
	current, err := setupFlag(machineCurrent)
	if err != nil {
		return progression.MachineInput{}, fmt.Errorf("Invalid --current: %w", err)
	}
	next, err := setupFlag(machineNext)
	if err != nil {
		return progression.MachineInput{}, fmt.Errorf("Invalid --next: %w", err)
	}
	photo, err := utils.EncodePhoto(machinePhoto)
	if err != nil {
		return progression.MachineInput{}, fmt.Errorf("Failed to read photo: %w", err)
	}
	return progression.MachineInput{
		Name:              machineName,
		StreakRequirement: machineStreak,
		AutoAdvance:       machineAuto,
		Photo:             photo,
		CurrentSetup:      current,
		NextSetup:         next,
	}, nil
}

var editMachineCmd = &cobra.Command{
	Use:   "edit-machine [machine]",
	Short: "Edit a machine's name, requirement or setups, keeping its progression",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		m, err := a.tracker.FindMachine(args[0])
		if err != nil {
			return err
		}

		// Unset flags keep the current values.
		flags := cmd.Flags()
		if !flags.Changed("name") {
			machineName = m.Name
		}
		if !flags.Changed("streak") {
			machineStreak = m.StreakRequirement
		}
		if !flags.Changed("auto") {
			machineAuto = m.AutoAdvance
		}
		if !flags.Changed("current") {
			machineCurrent = progression.FormatSetup(m.CurrentSetup)
		}
		if !flags.Changed("next") {
			machineNext = progression.FormatSetup(m.NextSetup)
		}

		in, err := machineInputFromFlags()
		if err != nil {
			return err
		}
		updated, err := a.tracker.UpdateMachine(cmd.Context(), m.ID, in)
		if err != nil {
			return fmt.Errorf("Failed to update machine: %w", err)
		}
		fmt.Printf("✅ Updated machine %s\n", updated.Name)
		return nil
	},
}

var deleteMachineCmd = &cobra.Command{
	Use:   "delete-machine [machine]",
	Short: "Delete a machine and its sessions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		m, err := a.tracker.FindMachine(args[0])
		if err != nil {
			return err
		}
		err = withConfirmation(func(confirmed bool) error {
			return a.tracker.DeleteMachine(cmd.Context(), m.ID, confirmed)
		})
		if err != nil {
			return fmt.Errorf("Failed to delete machine: %w", err)
		}
		fmt.Printf("✅ Deleted machine %s\n", m.Name)
		return nil
	},
}

var listMachinesCmd = &cobra.Command{
	Use:   "machines",
	Short: "List machines with their setups and streaks",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		bold := color.New(color.Bold).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()
		for _, m := range a.tracker.Machines() {
			pct, _ := progression.StreakProgress(m)
			fmt.Printf("%s  %s\n", bold(m.Name), faint(m.ID))
			fmt.Printf("   Level %d · %s\n", m.Level, progression.SetupText(m.CurrentSetup))
			fmt.Printf("   🔥 %d/%d (%d%%) | Next: %s\n", m.Streak, m.StreakRequirement, pct, progression.SetupText(m.NextSetup))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addMachineCmd)
	rootCmd.AddCommand(editMachineCmd)
	rootCmd.AddCommand(deleteMachineCmd)
	rootCmd.AddCommand(listMachinesCmd)

	for _, c := range []*cobra.Command{addMachineCmd, editMachineCmd} {
		c.Flags().StringVarP(&machineName, "name", "n", "", "Machine name")
		c.Flags().IntVarP(&machineStreak, "streak", "s", 3, "Consecutive YES days needed to level up")
		c.Flags().BoolVar(&machineAuto, "auto", true, "Advance the setup automatically when the streak is met")
		c.Flags().StringVar(&machineCurrent, "current", "", "Current setup, rows of weight|rounds|minRep|maxRep separated by ;")
		c.Flags().StringVar(&machineNext, "next", "", "Next setup, same format as --current")
		c.Flags().StringVar(&machinePhoto, "photo", "", "Image file to attach")
	}
	addMachineCmd.Flags().StringVarP(&machineFile, "file", "f", "", "TOML file with [[machine]] definitions")
}

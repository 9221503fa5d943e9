package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/misterclayt0n/warrior/internal/utils"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed workouts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		loc, err := a.cfg.Location()
		if err != nil {
			return err
		}

		names := make(map[string]string)
		for _, m := range a.tracker.Machines() {
			names[m.ID] = m.Name
		}

		history := a.tracker.History()
		if len(history) == 0 {
			fmt.Println("No completed workouts yet.")
			return nil
		}

		boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
		blue := color.New(color.FgBlue).SprintFunc()
		shown := 0
		for i := len(history) - 1; i >= 0; i-- {
			if historyLimit > 0 && shown == historyLimit {
				break
			}
			rec := history[i]
			fmt.Printf("%s %s\n", boldGreen(rec.Date), rec.WorkoutName)
			fmt.Printf("   %s: %s\n", blue("Completed"), utils.FormatLocal(rec.CompletedAt, loc))
			for _, it := range rec.Items {
				name := names[it.MachineID]
				if name == "" {
					name = "(deleted machine)"
				}
				fmt.Printf("   • %s %s", name, resultLabel(it.Result))
				if it.Progress != "" {
					fmt.Printf("  %s", it.Progress)
				}
				fmt.Println()
			}
			fmt.Println()
			shown++
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 10, "Number of workouts to show (0 for all)")
}

package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/misterclayt0n/warrior/internal/progression"
	"github.com/spf13/cobra"
)

var recentLimit int

var showMachineCmd = &cobra.Command{
	Use:   "show [machine]",
	Short: "Show a machine's setups, level history and recent sessions",
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

		boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
		boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		magenta := color.New(color.FgMagenta).SprintFunc()

		fmt.Println(boldGreen(m.Name))
		fmt.Printf("  %s: %d\n", boldCyan("Level"), m.Level)
		fmt.Printf("  %s: %d/%d\n", boldCyan("Streak"), m.Streak, m.StreakRequirement)
		fmt.Printf("  %s: %v\n", boldCyan("Auto-advance"), m.AutoAdvance)
		fmt.Println()

		fmt.Println(boldGreen("Required today:"))
		for _, s := range m.CurrentSetup {
			fmt.Printf("  %s – %d rounds – %d-%d reps\n", s.Weight, s.Rounds, s.MinRep, s.MaxRep)
		}
		fmt.Printf("%s %s\n\n", boldGreen("Next:"), progression.SetupText(m.NextSetup))

		fmt.Println(boldGreen("Level history:"))
		for _, h := range m.LevelHistory {
			fmt.Printf("  %s  level %d\n", h.Date, h.Level)
		}
		fmt.Println()

		fmt.Println(boldGreen("Recent:"))
		recent := a.tracker.RecentSessions(m.ID, recentLimit)
		if len(recent) == 0 {
			fmt.Println(magenta("  No sessions yet."))
			return nil
		}
		for _, s := range recent {
			fmt.Printf("  %s - %s", s.Date, resultLabel(s.Result))
			if s.Progress != "" {
				fmt.Printf("  %s", s.Progress)
			}
			if s.Notes != "" {
				fmt.Printf("  %s", magenta(s.Notes))
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showMachineCmd)
	showMachineCmd.Flags().IntVarP(&recentLimit, "limit", "l", 5, "Number of recent sessions to show")
}

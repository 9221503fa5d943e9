package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/misterclayt0n/warrior/internal/progression"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's overview: pending machines, weekly workouts, level-ups, consistency and streaks",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		d := a.tracker.Dashboard()
		today, _ := progression.ParseDay(d.Today)

		// Print a stylish header.
		printBoxedHeader(today.Format("Mon Jan 02 2006"))

		printMetric("Machines pending today", d.PendingToday)
		printMetric("Total workouts this week", d.WorkoutsThisWeek)
		printMetric("Machines leveled up this year", d.LevelUpsThisYear)
		printMetric("Average consistency", fmt.Sprintf("%d%%", d.Consistency))
		if pending := len(a.tracker.Pending()); pending > 0 {
			printMetric("Events waiting to sync", pending)
		}
		fmt.Println()

		header := color.New(color.FgGreen, color.Bold).Sprintf("Current streaks:")
		fmt.Println(header)
		for _, s := range d.Streaks {
			line := fmt.Sprintf("  • %s – %d/%d days completed",
				color.New(color.FgMagenta, color.Bold).Sprint(s.Machine.Name), s.Machine.Streak, s.Machine.StreakRequirement)
			if s.Close {
				line += color.YellowString(" ⚡ close")
			}
			fmt.Println(line)
		}

		if active, ok := a.tracker.ActiveWorkout(); ok {
			fmt.Println()
			printMetric("Active workout", fmt.Sprintf("%s (%d left)", active.WorkoutName, active.Remaining()))
		}
		fmt.Println()
		return nil
	},
}

// printBoxedHeader prints the title in a Unicode box with a fixed width.
func printBoxedHeader(title string) {
	width := 40
	cyanBold := color.New(color.FgCyan, color.Bold).SprintFunc()
	border := strings.Repeat("═", width)
	fmt.Println(cyanBold("╔" + border + "╗"))
	fmt.Println(cyanBold("║" + centerText(title, width) + "║"))
	fmt.Println(cyanBold("╚" + border + "╝"))
}

// centerText centers the given string in a field of the specified width.
func centerText(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := (width - len(s)) / 2
	return strings.Repeat(" ", padding) + s + strings.Repeat(" ", width-len(s)-padding)
}

// printMetric prints a label and value using bold yellow for the label.
func printMetric(label string, value interface{}) {
	yellowBold := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Printf("  %s: %v\n", yellowBold(label), value)
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

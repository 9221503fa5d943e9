package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/warrior/internal/models"
	"github.com/misterclayt0n/warrior/internal/progression"
	"github.com/misterclayt0n/warrior/internal/utils"
	"github.com/spf13/cobra"
)

// details is a flag to print the notes of every logged day.
var details bool

// progressCmd prints a machine's yearly summary and a calendar grid with
// YES days in green and NO days in red.
var progressCmd = &cobra.Command{
	Use:   "progress [machine] [year]",
	Short: "Display a machine's yearly progress and calendar",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		year := 0
		if len(args) == 2 {
			y, err := strconv.Atoi(args[1])
			if err != nil || y < 1 {
				return fmt.Errorf("invalid year: %s", args[1])
			}
			year = y
		}

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		if year == 0 {
			year = progression.YearOf(a.tracker.Today())
		}

		m, err := a.tracker.FindMachine(args[0])
		if err != nil {
			return err
		}
		r, err := a.tracker.MachineYear(m.ID, year)
		if err != nil {
			return err
		}

		printBoxedHeader(fmt.Sprintf("%s · %d", m.Name, year))
		printMetric("Total YES days", r.Yes)
		printMetric("Longest streak", r.LongestStreak)
		printMetric("Total level-ups", r.LevelUps)
		printMetric("Consistency", fmt.Sprintf("%d%%", r.Consistency))
		fmt.Println()

		if len(r.Levels) > 0 {
			fmt.Println(color.New(color.FgGreen, color.Bold).Sprint("Level by YES day:"))
			for _, p := range r.Levels {
				fmt.Printf("  %s  L%d\n", p.Date[5:], p.Level)
			}
			fmt.Println()
		}

		for month := time.January; month <= time.December; month++ {
			printMonth(year, month, r.Calendar)
		}

		fmt.Printf("Legend: %s YES  %s NO\n", color.GreenString("██"), color.RedString("██"))

		if details {
			fmt.Println("\nDay Details:")
			for month := time.January; month <= time.December; month++ {
				for day := 1; day <= utils.DaysIn(year, month); day++ {
					date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(progression.DayLayout)
					if s, ok := a.tracker.SessionOn(m.ID, date); ok {
						line := fmt.Sprintf("  %s: %s", s.Date, resultLabel(s.Result))
						if s.Notes != "" {
							line += " - " + s.Notes
						}
						fmt.Println(line)
					}
				}
			}
		}
		return nil
	},
}

func printMonth(year int, month time.Month, days map[string]models.Result) {
	header := fmt.Sprintf("%s %d", month.String(), year)
	fmt.Println(centerText(header, 20))
	fmt.Println("Su Mo Tu We Th Fr Sa")

	weekday := utils.WeekdayOffset(year, month)
	for i := 0; i < weekday; i++ {
		fmt.Print("   ")
	}

	for day := 1; day <= utils.DaysIn(year, month); day++ {
		dayStr := fmt.Sprintf("%2d", day)
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(progression.DayLayout)
		switch days[date] {
		case models.ResultYes:
			dayStr = color.GreenString(dayStr)
		case models.ResultNo:
			dayStr = color.RedString(dayStr)
		}
		fmt.Printf("%s ", dayStr)
		weekday++
		if weekday%7 == 0 {
			fmt.Println()
		}
	}
	fmt.Print("\n\n")
}

func init() {
	rootCmd.AddCommand(progressCmd)
	progressCmd.Flags().BoolVarP(&details, "details", "d", false, "Print every logged day with its notes")
}

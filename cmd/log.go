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
	entryDate     string
	entryNotes    string
	entryProgress string
	entryPhoto    string
)

func parseResult(arg string) (models.Result, error) {
	switch strings.ToLower(arg) {
	case "yes", "y":
		return models.ResultYes, nil
	case "no", "n":
		return models.ResultNo, nil
	}
	return "", fmt.Errorf("result must be yes or no, got %q", arg)
}

var logCmd = &cobra.Command{
	Use:   "log [machine] [yes|no]",
	Short: "Log today's YES or NO for a machine",
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

		var out progression.Outcome
		err = withConfirmation(func(confirmed bool) error {
			out, err = a.tracker.LogSession(cmd.Context(), m.ID, result, progression.SessionInput{
				Date:     entryDate,
				Notes:    entryNotes,
				Photo:    photo,
				Progress: entryProgress,
				Confirm:  confirmed,
			})
			return err
		})
		if progression.IsDuplicate(err) {
			return fmt.Errorf("Only one YES per machine per day")
		}
		if err != nil {
			return fmt.Errorf("Failed to log session: %w", err)
		}

		fmt.Printf("✅ %s %s on %s · streak %d/%d\n",
			out.Machine.Name, resultLabel(out.Session.Result), out.Session.Date,
			out.Machine.Streak, out.Machine.StreakRequirement)
		if out.LeveledUp {
			celebrate(out.Message)
			fmt.Printf("   Now: %s\n", progression.SetupText(out.Machine.CurrentSetup))
		}
		return nil
	},
}

func resultLabel(r models.Result) string {
	switch r {
	case models.ResultYes:
		return color.GreenString("YES")
	case models.ResultNo:
		return color.RedString("NO")
	}
	return color.New(color.Faint).Sprint("—")
}

func init() {
	rootCmd.AddCommand(logCmd)

	logCmd.Flags().StringVarP(&entryDate, "date", "d", "", "Day to log (YYYY-MM-DD, default today)")
	logCmd.Flags().StringVar(&entryNotes, "notes", "", "Notes")
	logCmd.Flags().StringVarP(&entryProgress, "progress", "p", "", "What you actually did")
	logCmd.Flags().StringVar(&entryPhoto, "photo", "", "Image file to attach")
}

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
	assumeYes  bool
	offline    bool
)

var rootCmd = &cobra.Command{
	Use:           "warrior",
	Short:         "Machine-by-machine workout progression tracker",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/warrior/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Confirm destructive actions without prompting")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "Do not try to sync after the command")
}

package cmd

import (
	"fmt"
	"os"

	"github.com/example/exercise-tracker/internal/config"
	"github.com/example/exercise-tracker/internal/exercise"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

// configPath is the --config flag shared by every subcommand.
var configPath string

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "exercisetracker",
		Short:         "Exercise tracker API: users and their exercise logs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "optional YAML config file (environment overrides it)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newServerCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newUserCmd())
	root.AddCommand(newExerciseCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorText(err))
		os.Exit(1)
	}
}

// errorText prefers the client-facing message of a classified failure.
func errorText(err error) string {
	if msg, ok := exercise.Message(err); ok {
		return msg
	}
	return err.Error()
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

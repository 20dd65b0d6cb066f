// Package cli holds the programd command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cema-health/program-manager/internal/config"
)

// Set at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "programd",
		Short:         "Health program management backend",
		Long:          "programd registers clients, manages health programs, enrollments and appointments, and serves the JSON API used by the clinic front end.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global config flag: a directory holding config.yaml, or a yaml file.
	root.PersistentFlags().String("config", ".", "config file or directory")

	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newVersionCommand())

	return root
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

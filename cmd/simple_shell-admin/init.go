package main

import (
	"log"

	"github.com/josephlewis42/simpleshell/core/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// initCmd writes the default configuration
var initCmd = &cobra.Command{
	Use:   "init [DIR]",
	Short: "Write the default configuration, to $HOME/" + config.DirName + " unless DIR is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		dir := config.DefaultDir()
		if len(args) > 0 {
			dir = args[0]
		}
		if dir == "" {
			dir = "."
		}

		logger := log.New(cmd.ErrOrStderr(), "", 0)

		return config.Initialize(afero.NewOsFs(), dir, logger)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

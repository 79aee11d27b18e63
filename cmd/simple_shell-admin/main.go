// Command simple_shell-admin manages the configuration and event log of
// simple_shell.
package main

import (
	"errors"
	"io/fs"
	"log"

	"github.com/josephlewis42/simpleshell/core/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var cfgPath string

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Find(afero.NewOsFs(), cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

var rootCmd = &cobra.Command{
	Use:   "simple_shell-admin",
	Short: "Manage simple_shell",
	Long:  `Maintenance commands for simple_shell's configuration and event log.`,
}

func main() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config directory or config.yaml path (default $HOME/"+config.DirName+")")
}

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/josephlewis42/simpleshell/commands"
	"github.com/josephlewis42/simpleshell/core/config"
	"github.com/josephlewis42/simpleshell/core/logger"
	"github.com/josephlewis42/simpleshell/core/vos"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	cfgPath   string
	colorMode string
)

// exitError carries the exit code of a shell session through cobra.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	configuration, err := readConfig()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("color") {
		configuration.Color = colorMode
		if err := configuration.Validate(); err != nil {
			return nil, err
		}
	}

	return configuration, nil
}

// readConfig loads --config, or the configuration in $HOME falling back to
// the built-in defaults if there is none.
func readConfig() (*config.Configuration, error) {
	configuration, err := config.Find(afero.NewOsFs(), cfgPath)
	if cfgPath != "" && errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run simple_shell-admin init?")
	}
	return configuration, err
}

// rootCmd runs the shell on a script or interactively.
var rootCmd = &cobra.Command{
	Use:   "simple_shell [filename]",
	Short: "A minimal command interpreter",
	Long: `A minimal command interpreter.

With no arguments commands are read interactively. Given a filename, the
commands in the file are run one line at a time.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			return fmt.Errorf("Usage: %s [filename]", commands.ShellName)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	// The only argument is a script, never a subcommand.
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	RunE:              runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	configuration, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	hostOS := vos.NewHostOS(vos.NewStdio(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()))
	sh := commands.NewShell(hostOS, configuration)

	if configuration.EventLog != "" {
		fd, err := configuration.OpenEventLog()
		if err != nil {
			return err
		}
		defer fd.Close()

		sh.Events = logger.NewJsonLinesLogRecorder(fd).NewSession()
	}

	if err := sh.Init(); err != nil {
		return err
	}

	interactive := len(args) == 0
	src, err := openSource(hostOS, configuration, args)
	if err != nil {
		return err
	}
	defer src.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	if interactive {
		// Catch rather than ignore SIGINT, ignored signals are inherited by
		// children.
		interrupts := make(chan os.Signal, 1)
		signal.Notify(interrupts, os.Interrupt)
		defer signal.Stop(interrupts)
	}

	code, err := sh.Run(ctx, src, interactive)
	switch {
	case err != nil:
		return err
	case code != 0:
		return &exitError{code: code}
	default:
		return nil
	}
}

func openSource(hostOS *vos.HostOS, configuration *config.Configuration, args []string) (commands.LineSource, error) {
	switch {
	case len(args) == 1:
		src, err := commands.OpenScript(hostOS, args[0])
		if err != nil {
			return nil, fmt.Errorf("fopen: %w", err)
		}
		return src, nil

	case commands.IsTerminal(hostOS.Stdin()):
		return commands.NewReadlineSource(hostOS, configuration)

	default:
		return commands.NewReaderSource("stdin", hostOS.Stdin(), hostOS.Stdout()), nil
	}
}

// Execute runs the shell and exits with its status.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()

	var exitErr *exitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		os.Exit(exitErr.code)
	default:
		fmt.Fprintln(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config directory or config.yaml path (default $HOME/"+config.DirName+")")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", config.ColorAuto, "colorize diagnostics: always, auto or never")
}

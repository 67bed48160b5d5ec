package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/recera/vango-atomic/internal/config"
	"github.com/recera/vango-atomic/internal/logger"
)

var (
	version = "0.1.0-preview"
	commit  = "dev"
	date    = "unknown"
)

// app carries what every command needs once flags are parsed
type app struct {
	projectDir string
	logLevel   string
	human      bool

	config *config.Config
	log    zerolog.Logger
}

func (a *app) load() error {
	cfg, err := config.Load(a.projectDir)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if a.logLevel != "" {
		level = a.logLevel
	}

	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: a.human || cfg.Log.Human,
	})
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	a.config = cfg
	a.log = log
	return nil
}

func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "vatomic",
		Short: "Vango atomic styles - compile and inspect atomic CSS",
		Long: `vatomic compiles component style sources into atomic definition bundles
and shows which rules a component injects for a given state and direction.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.projectDir, "project", "p", ".", "Project directory containing vango.json")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&a.human, "human", false, "Human readable log output")

	rootCmd.AddCommand(newCompileCommand(a))
	rootCmd.AddCommand(newRenderCommand(a))

	return rootCmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

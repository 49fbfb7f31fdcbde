// Package cli implements the termsweeper command line.
package cli

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"termsweeper/config"
	"termsweeper/engine"
)

// Version is set at build time via ldflags
var Version = "dev"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Config  string
	LogFile string
	Seed    int64
	Play    bool
}

// NewRootCommand creates the root command. Without a subcommand it runs
// the terminal game.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "termsweeper",
		Short:         "Minesweeper in the terminal",
		Long:          "A 10x10 minesweeper with save files, game history and a text protocol for scripts.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "config file (default is $XDG_CONFIG_HOME/termsweeper/config.json)")
	cmd.PersistentFlags().StringVar(&opts.LogFile, "log-file", "", "log file (default is $XDG_CACHE_HOME/termsweeper/debug.log)")

	cmd.PersistentFlags().Int64Var(&opts.Seed, "seed", 0, "seed for mine placement, 0 picks one from the clock")
	cmd.Flags().BoolVar(&opts.Play, "play", false, "start a game immediately, skipping the menu")

	// Add subcommands
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewMTPCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// loadConfig reads the config named by --config, or the XDG default.
func (o *RootOptions) loadConfig() (*config.Config, error) {
	return config.InitConfig(o.Config)
}

// newRand returns a source for mine placement, seeded by --seed when set.
func (o *RootOptions) newRand() *rand.Rand {
	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// engineConfig builds the session settings from the config file and flags.
func (o *RootOptions) engineConfig(cfg *config.Config, log logrus.FieldLogger) engine.GameConfig {
	engCfg := engine.DefaultConfig()
	engCfg.Rand = o.newRand()
	engCfg.Tick = time.Duration(cfg.Game.TickMillis) * time.Millisecond
	engCfg.Logger = log
	return engCfg
}

// openLog creates the file logger. The returned closer closes the file.
func (o *RootOptions) openLog() (*logrus.Logger, io.Closer, error) {
	path := o.LogFile
	if path == "" {
		var err error
		if path, err = config.LogFile(); err != nil {
			return nil, nil, fmt.Errorf("resolve log file: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	log := logrus.New()
	log.SetOutput(f)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	log.SetLevel(logrus.InfoLevel)
	if o.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log, f, nil
}

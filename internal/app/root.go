package app

import (
	"fmt"
	"io"
	"os"

	"github.com/blackwell-systems/shelflog/internal/api"
	"github.com/blackwell-systems/shelflog/internal/cache"
	"github.com/blackwell-systems/shelflog/internal/config"
	"github.com/blackwell-systems/shelflog/internal/logging"
	"github.com/blackwell-systems/shelflog/internal/tui"
	"github.com/blackwell-systems/shelflog/internal/unified"
	"github.com/blackwell-systems/shelflog/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// offlineAnnotation marks commands that never talk to the reading-log API.
const offlineAnnotation = "shelflog/offline"

var (
	cfg      *config.Config
	client   *api.Client
	cacheMgr *cache.Manager

	flagNoColor       bool
	flagNoInteractive bool
	flagConfig        string
)

var rootCmd = &cobra.Command{
	Use:   "shelflog",
	Short: "Browse your reading log and bookshelf from the terminal",
	Long: `shelflog is a terminal client for a reading-log service.

The shelf view shows the books you have read as a scrolling strip of cards.
The records view pages through your reading records, lets you search them,
and links each record to a catalog book.

Run 'shelflog' with no arguments to launch the interactive views.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tui.ShouldUseTUI(cmd) {
			return runTUI(unified.ViewShelf)
		}
		return cmd.Help()
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/shelflog/config.yml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}

		if isOffline(cmd) {
			return nil
		}

		setupLogging(cfg.Log)

		if cfg.API.Token == "" {
			return fmt.Errorf("no API token found; set %s (for the dev backend see 'shelflog serve-dev --print-token')",
				cfg.API.EffectiveTokenEnv())
		}

		client = api.New(cfg.API.Token, cfg.API.BaseURL, api.Options{
			Timeout:    cfg.API.Timeout,
			RatePerSec: cfg.API.RatePerSec,
		})
		cacheMgr = cache.New(cfg.Cache.Dir)
		return nil
	}

	rootCmd.AddCommand(
		newShelfCmd(),
		newRecordsCmd(),
		newCoversCmd(),
		newConfigCmd(),
		newServeDevCmd(),
		newVersionCmd(),
		newCompletionCmd(),
	)
}

func loadConfig() (*config.Config, error) {
	var (
		c   *config.Config
		err error
	)
	if flagConfig != "" {
		c, err = config.LoadFile(flagConfig)
	} else {
		c, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return c, nil
}

// configPath is the file `config init` writes and Load reads.
func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.Path()
}

// isOffline reports whether cmd or one of its parents is marked offline.
// Cobra's own help and completion commands count as offline too.
func isOffline(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[offlineAnnotation] == "true" {
			return true
		}
		switch c.Name() {
		case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

func offline() map[string]string {
	return map[string]string{offlineAnnotation: "true"}
}

// setupLogging sends logs to the configured file. The TUI owns stdout, so
// an unusable log file silences logging rather than failing the command.
func setupLogging(lc config.LogConfig) {
	if lc.File == "" {
		logging.Setup(io.Discard, lc.Level, false)
		return
	}
	f, err := logging.OpenFile(lc.File)
	if err != nil {
		warn("Could not open log file %s: %v", lc.File, err)
		logging.Setup(io.Discard, lc.Level, false)
		return
	}
	logging.Setup(f, lc.Level, false)
}

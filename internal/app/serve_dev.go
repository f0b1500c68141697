package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/blackwell-systems/shelflog/internal/devserver"
	"github.com/blackwell-systems/shelflog/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const devTokenTTL = 30 * 24 * time.Hour

func newServeDevCmd() *cobra.Command {
	var (
		addr       string
		dbPath     string
		seedPath   string
		printToken bool
	)

	cmd := &cobra.Command{
		Use:   "serve-dev",
		Short: "Run a local reading-log backend for development",
		Long: `Run a small reading-log backend on SQLite.

An empty database is filled with a built-in sample unless --seed names a
JSON fixture. --print-token prints a bearer token for the configured user
and exits.

Examples:
  shelflog serve-dev
  eval "$(shelflog serve-dev --print-token)"
  shelflog serve-dev --db /tmp/dev.db --seed fixtures.json`,
		Args:        cobra.NoArgs,
		Annotations: offline(),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := []byte(cfg.Dev.Secret)
			userID := cfg.Dev.UserID
			if userID <= 0 {
				userID = 1
			}

			if printToken {
				tok, err := devserver.IssueToken(secret, userID, devTokenTTL)
				if err != nil {
					return err
				}
				fmt.Printf("export %s=%s\n", cfg.API.EffectiveTokenEnv(), tok)
				return nil
			}

			log := logrus.New()
			log.SetOutput(os.Stderr)
			log.SetFormatter(&logrus.TextFormatter{
				FullTimestamp: true,
				ForceColors:   util.IsStderrTTY(),
				DisableColors: !util.IsStderrTTY(),
			})
			if lvl, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
				log.SetLevel(lvl)
			}
			gin.SetMode(gin.ReleaseMode)

			if dbPath != ":memory:" {
				if err := util.EnsureDir(filepath.Dir(dbPath)); err != nil {
					return err
				}
			}
			store, err := devserver.Open(dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := store.Migrate(ctx); err != nil {
				return err
			}
			if err := store.EnsureUser(ctx, userID, "dev"); err != nil {
				return err
			}
			if err := seedStore(ctx, store, seedPath, log); err != nil {
				return err
			}

			return devserver.Run(ctx, addr, devserver.NewRouter(store, secret, log), log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from dev.addr)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default from dev.db_path)")
	cmd.Flags().StringVar(&seedPath, "seed", "", "JSON fixture to load before serving")
	cmd.Flags().BoolVar(&printToken, "print-token", false, "Print a bearer token export line and exit")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if addr == "" {
			addr = cfg.Dev.Addr
		}
		if dbPath == "" {
			dbPath = cfg.Dev.DBPath
		}
		return nil
	}
	return cmd
}

// seedStore loads path when given, otherwise the sample if the store has no
// records yet.
func seedStore(ctx context.Context, store *devserver.Store, path string, log *logrus.Logger) error {
	var (
		seed *devserver.Seed
		err  error
	)
	switch {
	case path != "":
		seed, err = devserver.LoadSeed(path)
	default:
		empty, eerr := store.Empty(ctx)
		if eerr != nil {
			return eerr
		}
		if !empty {
			return nil
		}
		seed, err = devserver.SampleSeed()
	}
	if err != nil {
		return err
	}
	n, err := store.Seed(ctx, seed)
	if err != nil {
		return err
	}
	log.WithField("records", n).Info("devserver: seeded")
	return nil
}

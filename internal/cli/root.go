// Package cli implements the catalog command line client.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/game-catalog-service/internal/config"
	"github.com/preston-bernstein/game-catalog-service/internal/debounce"
	"github.com/preston-bernstein/game-catalog-service/internal/logging"
	"github.com/preston-bernstein/game-catalog-service/internal/server"
)

type buildFunc func(ctx context.Context, cfg config.Config, logger *slog.Logger) (*server.Catalog, error)

// app carries the state shared by every command for one invocation.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	tty    bool

	envFiles []string
	provider string
	jsonOut  bool
	verbose  bool

	build     buildFunc
	scheduler debounce.Scheduler

	cfg     config.Config
	logger  *slog.Logger
	catalog *server.Catalog
}

func defaultBuild(ctx context.Context, cfg config.Config, logger *slog.Logger) (*server.Catalog, error) {
	return server.BuildCatalog(ctx, cfg, logger, nil)
}

func newApp() *app {
	return &app{
		in:        os.Stdin,
		out:       os.Stdout,
		errOut:    os.Stderr,
		tty:       isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
		build:     defaultBuild,
		scheduler: debounce.TimerScheduler{},
	}
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	a := newApp()
	defer a.teardown()
	root := newRootCommand(a)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(a.errOut, "Error:", err)
		return 1
	}
	return 0
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the IGDB game catalog from the command line.",
		Long: `catalog queries genres, platform groups and games from IGDB using a cached
Twitch client-credentials token. Set IGDB_CLIENT_ID and IGDB_CLIENT_SECRET (or
use --provider fixture for offline sample data).`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringSliceVar(&a.envFiles, "env-file", nil, "load variables from these .env files")
	flags.StringVar(&a.provider, "provider", "", "override PROVIDER (igdb or fixture)")
	flags.BoolVar(&a.jsonOut, "json", false, "print JSON instead of tables")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log upstream calls to stderr")

	root.AddCommand(
		newGenresCommand(a),
		newPlatformsCommand(a),
		newGamesCommand(a),
		newGameCommand(a),
		newTokenCommand(a),
		newBrowseCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	var cfg config.Config
	if len(a.envFiles) > 0 {
		loaded, err := config.LoadFiles(a.envFiles...)
		if err != nil {
			return fmt.Errorf("load env files: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.Load()
	}
	if a.provider != "" {
		cfg.Provider = a.provider
	}
	a.cfg = cfg

	level := "warn"
	if a.verbose {
		level = "debug"
	}
	a.logger = logging.NewLogger(logging.Config{
		Level:  level,
		Format: cfg.Log.Format,
		Output: a.errOut,
	})

	cat, err := a.build(cmd.Context(), cfg, a.logger)
	if err != nil {
		return err
	}
	a.catalog = cat
	return nil
}

func (a *app) teardown() error {
	if a.catalog == nil {
		return nil
	}
	err := a.catalog.Close()
	a.catalog = nil
	return err
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/brickmath/internal/config"
	"github.com/abhisek/brickmath/internal/logging"
	"github.com/abhisek/brickmath/internal/profile"
	"github.com/abhisek/brickmath/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "brickmath",
	Short: "Times tables practice that pays in bricks",
	Long: "Brickmath is a terminal game for practising the 1-12 times tables. " +
		"Correct answers earn bricks, streaks unlock achievements and bricks build models.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides BRICKMATH_DB and db_path)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/brickmath/config.toml)")
	rootCmd.Flags().Bool("no-splash", false, "Skip the start-up animation")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(versionCmd)
}

// env is everything a command needs: settings, logger, store and the
// profile manager on top of it.
type env struct {
	cfg     *config.Config
	log     zerolog.Logger
	store   *store.Store
	mgr     *profile.Manager
	closers []io.Closer
}

// Close stops autosave and releases the store and log file.
func (e *env) Close() {
	if e.mgr != nil {
		e.mgr.Close()
	}
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			e.log.Warn().Err(err).Msg("close")
		}
	}
}

// setup loads .env, the config file and the log file, then opens the store
// named by the flags and config.
func setup(cmd *cobra.Command) (*env, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	e, err := openEnv(dbPath, cfg, log)
	if err != nil {
		logCloser.Close()
		return nil, err
	}
	e.closers = append([]io.Closer{logCloser}, e.closers...)
	log.Debug().Str("cmd", cmd.Name()).Str("db", dbPath).Msg("started")
	return e, nil
}

// openEnv opens the store at dbPath and builds a logged-out manager.
func openEnv(dbPath string, cfg *config.Config, log zerolog.Logger) (*env, error) {
	st, err := store.Open(dbPath, store.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	mgr := profile.NewManager(st.SnapshotRepo(),
		profile.WithLogger(log),
		profile.WithAutosaveInterval(cfg.AutosaveInterval()),
		profile.WithDefaultTables(cfg.DefaultTables),
	)
	return &env{
		cfg:     cfg,
		log:     log,
		store:   st,
		mgr:     mgr,
		closers: []io.Closer{st},
	}, nil
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then db_path or BRICKMATH_DB from the config, then the default
// XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// resume logs in with the stored player. Commands that need one fail with
// a hint when there is none.
func resume(ctx context.Context, e *env) error {
	ok, err := e.mgr.Resume(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errNoPlayer
	}
	return nil
}

var errNoPlayer = errors.New("no player yet: run brickmath to log in and play")

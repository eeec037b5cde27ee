package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathwheel/internal/config"
	"github.com/abhisek/mathwheel/internal/lessons"
	"github.com/abhisek/mathwheel/internal/llm"
	"github.com/abhisek/mathwheel/internal/logging"
	"github.com/abhisek/mathwheel/internal/store"
)

// runtime bundles what every command needs: config, a logger and an open
// store.
type runtime struct {
	cfg     *config.App
	log     zerolog.Logger
	store   *store.Store
	closers []io.Closer
}

// openRuntime loads configuration, builds the logger and opens the store.
// When toFile is set logs go to a file, since the TUI owns the terminal.
func openRuntime(cmd *cobra.Command, toFile bool) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg}

	var out io.Writer = os.Stderr
	if toFile {
		f, err := openLogFile(cfg)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, f)
		out = f
	}
	rt.log = logging.New(logging.Options{
		App:    cfg.Name,
		Env:    cfg.Env,
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Out:    out,
	})

	driver, dsn, err := resolveDB(cmd, cfg)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("resolve database: %w", err)
	}
	st, err := store.OpenDriver(cmd.Context(), driver, dsn)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	rt.store = st
	rt.closers = append(rt.closers, st)

	rt.log.Debug().Str("driver", string(driver)).Msg("store opened")
	return rt, nil
}

// Close releases resources in reverse order of acquisition. Failures are
// logged, since there is nothing left to do about them.
func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil {
			r.log.Warn().Err(err).Str("resource", fmt.Sprintf("%T", r.closers[i])).Msg("close")
		}
	}
	r.closers = nil
}

func openLogFile(cfg *config.App) (*os.File, error) {
	path := cfg.Log.File
	if path == "" {
		dir, err := store.DataDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "mathwheel.log")
	}
	return logging.OpenFile(path)
}

// resolveDB picks the driver and DSN: flags first, then MATHWHEEL_DB_DRIVER
// and MATHWHEEL_DB, then the default SQLite file.
func resolveDB(cmd *cobra.Command, cfg *config.App) (store.Driver, string, error) {
	name := cfg.DB.Driver
	if f, _ := cmd.Flags().GetString("db-driver"); f != "" {
		name = f
	}
	driver, err := store.ParseDriver(name)
	if err != nil {
		return "", "", err
	}

	dsn := cfg.DB.DSN
	if f, _ := cmd.Flags().GetString("db"); f != "" {
		dsn = f
	}

	if driver == store.DriverPostgres {
		if dsn == "" {
			return "", "", fmt.Errorf("postgres needs a connection URL (--db or %sDB)", config.Prefix)
		}
		return driver, dsn, nil
	}
	if dsn == "" {
		p, err := store.DefaultDBPath()
		return driver, p, err
	}
	return driver, dsn, store.EnsureDir(dsn)
}

// stories builds the buddy story service. Without a usable LLM provider
// every story falls back to the lesson tip.
func (r *runtime) stories(ctx context.Context) *lessons.Service {
	cfg, ok, err := llm.Resolve()
	if err == nil && !ok {
		r.log.Info().Msg("no LLM provider configured, buddy stories use lesson tips")
		return lessons.NewService(nil, lessons.DefaultConfig(), r.log)
	}
	var provider llm.Provider
	if err == nil {
		provider, err = llm.NewProvider(ctx, cfg, r.store.EventRepo(), r.log)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Buddy stories will use lesson tips.")
		return lessons.NewService(nil, lessons.DefaultConfig(), r.log)
	}

	r.log.Info().
		Str("provider", cfg.Provider).
		Str("model", provider.ModelID()).
		Msg("LLM provider ready")
	return lessons.NewService(provider, lessons.DefaultConfig(), r.log)
}

package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/hpungsan/promptlib/internal/config"
	"github.com/hpungsan/promptlib/internal/db"
	"github.com/hpungsan/promptlib/internal/logging"
	"github.com/hpungsan/promptlib/internal/store"
)

// env holds the library and its dependencies. Nothing is opened until a
// command needs it, so --help and --version never touch the data directory.
type env struct {
	dataDir string
	verbose bool
	errOut  io.Writer

	cfg   *config.Config
	log   *zap.Logger
	db    *sql.DB
	store *store.Store
}

// open resolves the data directory, loads config, opens the snapshot journal
// and loads the library. A journal that fails to open is logged and skipped;
// the library stays usable without snapshots.
func (e *env) open() (*store.Store, error) {
	if e.store != nil {
		return e.store, nil
	}
	if e.errOut == nil {
		e.errOut = os.Stderr
	}

	paths, err := store.ResolvePaths(e.dataDir)
	if err != nil {
		return nil, fmt.Errorf("could not determine data directory: %w", err)
	}
	if err := paths.Ensure(); err != nil {
		return nil, err
	}

	cfg, err := config.Load(paths.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logging.New(cfg.LogLevel, e.verbose)
	if err != nil {
		return nil, err
	}

	var journal store.Journal
	database, err := db.Init(paths.DataDir)
	if err != nil {
		log.Warn("snapshot journal unavailable, continuing without snapshots", zap.Error(err))
	} else {
		e.db = database
		journal = db.NewJournal(database, cfg.SnapshotKeep)
	}

	s, err := store.Open(store.Options{
		Paths:           paths,
		Journal:         journal,
		PreserveCorrupt: cfg.ShouldPreserveCorrupt(),
		Logger:          log,
	})
	if err != nil {
		e.close()
		return nil, err
	}

	result, err := s.Load()
	if err != nil {
		e.close()
		return nil, err
	}
	if result.Warning != nil {
		fmt.Fprintf(e.errOut, "warning: %v; using the sample library", result.Warning)
		if result.PreservedAs != "" {
			fmt.Fprintf(e.errOut, " (previous content kept as %s)", result.PreservedAs)
		}
		fmt.Fprintln(e.errOut)
	}

	e.cfg, e.log, e.store = cfg, log, s
	return s, nil
}

// config returns the loaded config. Only valid after open.
func (e *env) config() *config.Config {
	if e.cfg == nil {
		return config.DefaultConfig()
	}
	return e.cfg
}

// close releases the journal and flushes the logger.
func (e *env) close() error {
	if e.log != nil {
		_ = e.log.Sync()
	}
	if e.db != nil {
		err := e.db.Close()
		e.db = nil
		return err
	}
	return nil
}

// Package bootstrap builds the adapters every entry point needs from the
// loaded configuration.
package bootstrap

import (
	"fmt"

	"go.uber.org/zap"

	"rcjobs/internal/adapters/bolt"
	"rcjobs/internal/adapters/rclone"
	"rcjobs/internal/adapters/sqlite"
	"rcjobs/internal/config"
	"rcjobs/internal/domain"
	"rcjobs/internal/logging"
	"rcjobs/internal/ports"
)

// Options override configuration values from command line flags
type Options struct {
	ConfigPath string
	StorePath  string
	LogLevel   string
	// LogFile forces application logs into a file, which the TUI needs
	// to keep the terminal clean
	LogFile string
}

// Env holds the wired adapters
type Env struct {
	Config     *config.Config
	Store      ports.JobStore
	Translator *domain.Translator
	Runner     *rclone.Runner
}

// Open loads configuration, initializes logging and opens the job store
func Open(opts Options) (*Env, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.StorePath != "" {
		cfg.Store.Path = opts.StorePath
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.LogFile != "" {
		cfg.Log.File = opts.LogFile
	}

	if err := logging.Init(logging.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputPath: cfg.Log.File,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	store, err := OpenStore(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	logging.L().Debug("environment ready",
		zap.String("config", path),
		zap.String("store", cfg.Store.Backend),
		zap.String("store_path", cfg.Store.Path),
		zap.String("rclone", cfg.Rclone.Path),
	)

	return &Env{
		Config:     cfg,
		Store:      store,
		Translator: domain.NewTranslator(domain.WithDriveLetters(cfg.DriveLettersEnabled())),
		Runner:     NewRunner(cfg),
	}, nil
}

// OpenStore opens the job store for a backend name
func OpenStore(backend, path string) (ports.JobStore, error) {
	switch backend {
	case config.BackendSQLite:
		return sqlite.Open(path)
	case config.BackendBolt:
		return bolt.Open(path)
	}
	return nil, fmt.Errorf("unknown store backend %q", backend)
}

// NewRunner creates the rclone runner described by cfg
func NewRunner(cfg *config.Config) *rclone.Runner {
	opts := []rclone.Option{rclone.WithExecutable(cfg.Rclone.Path)}
	if cfg.Rclone.Config != "" {
		opts = append(opts, rclone.WithConfigPath(cfg.Rclone.Config))
	}
	return rclone.NewRunner(opts...)
}

// Close releases the store and flushes logs
func (e *Env) Close() error {
	err := e.Store.Close()
	_ = logging.Sync()
	return err
}

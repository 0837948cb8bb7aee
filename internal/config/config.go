package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Environment overrides
const (
	EnvConfig = "RCJOBS_CONFIG"
	EnvRclone = "RCJOBS_RCLONE"
	EnvStore  = "RCJOBS_STORE"
)

const (
	DefaultConfigPath = "~/.config/rcjobs/config.yaml"
	DefaultStorePath  = "~/.local/share/rcjobs/jobs.db"
)

// Store backends
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
)

// Drive letter modes
const (
	DriveLettersAuto = "auto"
	DriveLettersOn   = "on"
	DriveLettersOff  = "off"
)

// Config mirrors config.yaml
type Config struct {
	Rclone     RcloneConfig     `yaml:"rclone"`
	Store      StoreConfig      `yaml:"store"`
	Translator TranslatorConfig `yaml:"translator"`
	Log        LogConfig        `yaml:"log"`
	Run        RunConfig        `yaml:"run"`
	TUI        TUIConfig        `yaml:"tui"`
}

// RcloneConfig locates the rclone binary and the config it runs with
type RcloneConfig struct {
	Path   string `yaml:"path"`
	Config string `yaml:"config"`
	LogDir string `yaml:"log_dir"`
}

// StoreConfig selects where jobs are persisted
type StoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// TranslatorConfig tunes command line parsing
type TranslatorConfig struct {
	// auto and on treat "C:" prefixes as Windows drives, off treats them
	// as remote names
	DriveLetters string `yaml:"drive_letters"`
}

// LogConfig configures the application log, not rclone's
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// RunConfig controls batch runs
type RunConfig struct {
	Parallel int `yaml:"parallel"`
}

// TUIConfig configures the terminal interface
type TUIConfig struct {
	// Editor opens log files; empty means $EDITOR
	Editor string `yaml:"editor"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Rclone:     RcloneConfig{Path: "rclone"},
		Store:      StoreConfig{Backend: BackendSQLite, Path: DefaultStorePath},
		Translator: TranslatorConfig{DriveLetters: DriveLettersAuto},
		Log:        LogConfig{Level: "info", Format: "console"},
		Run:        RunConfig{Parallel: 1},
	}
}

// Path returns the config file path from RCJOBS_CONFIG, falling back to
// DefaultConfigPath.
func Path() string {
	if env := os.Getenv(EnvConfig); env != "" {
		return env
	}
	return DefaultConfigPath
}

// Load reads the config file at path. A missing file yields the defaults.
// Environment overrides are applied after the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("invalid config path %q: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", expanded, err)
		}
	}

	if env := os.Getenv(EnvRclone); env != "" {
		cfg.Rclone.Path = env
	}
	if env := os.Getenv(EnvStore); env != "" {
		cfg.Store.Path = env
	}

	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", expanded, err)
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if c.Rclone.Path == "" {
		c.Rclone.Path = "rclone"
	}
	if c.Store.Backend == "" {
		c.Store.Backend = BackendSQLite
	}
	if c.Store.Path == "" {
		c.Store.Path = DefaultStorePath
	}
	if c.Translator.DriveLetters == "" {
		c.Translator.DriveLetters = DriveLettersAuto
	}
	if c.Run.Parallel == 0 {
		c.Run.Parallel = 1
	}

	c.Store.Backend = strings.ToLower(c.Store.Backend)
	c.Translator.DriveLetters = strings.ToLower(c.Translator.DriveLetters)

	switch c.Store.Backend {
	case BackendSQLite, BackendBolt:
	default:
		return fmt.Errorf("store.backend: unknown backend %q (expected sqlite or bolt)", c.Store.Backend)
	}
	switch c.Translator.DriveLetters {
	case DriveLettersAuto, DriveLettersOn, DriveLettersOff:
	default:
		return fmt.Errorf("translator.drive_letters: unknown mode %q (expected auto, on or off)", c.Translator.DriveLetters)
	}
	if c.Run.Parallel < 0 {
		return fmt.Errorf("run.parallel: must be positive, got %d", c.Run.Parallel)
	}

	var err error
	for _, p := range []*string{&c.Store.Path, &c.Rclone.Config, &c.Rclone.LogDir, &c.Log.File} {
		if *p == "" {
			continue
		}
		if *p, err = homedir.Expand(*p); err != nil {
			return err
		}
		*p = filepath.Clean(*p)
	}
	return nil
}

// DriveLettersEnabled reports whether the translator should honor drive
// letters
func (c *Config) DriveLettersEnabled() bool {
	return c.Translator.DriveLetters != DriveLettersOff
}

// Save writes the config as YAML, creating parent directories
func (c *Config) Save(path string) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(expanded, data, 0o644)
}

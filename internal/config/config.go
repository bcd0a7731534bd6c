// Package config resolves nxcube settings from flags, environment and an
// optional config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/SeamusWaldron/nxcube"
)

// EnvPrefix prefixes every environment variable, e.g. NXCUBE_SIZE.
const EnvPrefix = "NXCUBE"

// Keys understood by Load.
const (
	KeySize    = "size"
	KeyMode    = "mode"
	KeySteps   = "steps"
	KeyShuffle = "shuffle"
	KeySeed    = "seed"
	KeyFPS     = "fps"
	KeyDB      = "db"
	KeyLogDir  = "log_dir"
	KeyRecord  = "record"
	KeyConfig  = "config"
)

// Config is the resolved application configuration.
type Config struct {
	Size         int
	Mode         nxcube.Mode
	Steps        int
	ShuffleTurns int
	Seed         uint64 // 0 means seed from the clock
	FPS          int
	DBPath       string
	LogDir       string
	Record       bool
	File         string // Config file that was read, if any
}

// DefaultDir returns ~/.nxcube, creating it if needed.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".nxcube")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeySize, 3)
	v.SetDefault(KeyMode, nxcube.Standard.String())
	v.SetDefault(KeySteps, nxcube.DefaultSteps)
	v.SetDefault(KeyShuffle, nxcube.DefaultShuffleTurns)
	v.SetDefault(KeySeed, 0)
	v.SetDefault(KeyFPS, 30)
	v.SetDefault(KeyDB, "")
	v.SetDefault(KeyLogDir, "")
	v.SetDefault(KeyRecord, true)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds every flag in fs whose name matches a key. Dashes in flag
// names map to underscores, so --log-dir sets log_dir.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if bindErr := v.BindPFlag(key, f); bindErr != nil && err == nil {
			err = fmt.Errorf("failed to bind flag %s: %w", f.Name, bindErr)
		}
	})
	return err
}

// ReadFile reads the config file named by the config key. Without one it
// looks for config.yaml in dir and silently continues if there is none.
func ReadFile(v *viper.Viper, dir string) error {
	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", path, err)
		}
		return nil
	}

	if dir == "" {
		return nil
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Load resolves and validates the configuration. Empty paths are filled in
// under dir.
func Load(v *viper.Viper, dir string) (*Config, error) {
	mode, err := nxcube.ParseMode(v.GetString(KeyMode))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Size:         v.GetInt(KeySize),
		Mode:         mode,
		Steps:        v.GetInt(KeySteps),
		ShuffleTurns: v.GetInt(KeyShuffle),
		Seed:         v.GetUint64(KeySeed),
		FPS:          v.GetInt(KeyFPS),
		DBPath:       v.GetString(KeyDB),
		LogDir:       v.GetString(KeyLogDir),
		Record:       v.GetBool(KeyRecord),
		File:         v.ConfigFileUsed(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(dir, "nxcube.db")
	}
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(dir, "logs")
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Size < 1 {
		return fmt.Errorf("%w: %d", nxcube.ErrInvalidSize, c.Size)
	}
	if !c.Mode.Valid() {
		return fmt.Errorf("%w: %d", nxcube.ErrInvalidMode, int(c.Mode))
	}
	if c.Steps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d", c.Steps)
	}
	if c.ShuffleTurns < 0 {
		return fmt.Errorf("shuffle turns must not be negative, got %d", c.ShuffleTurns)
	}
	if c.FPS < 1 {
		return fmt.Errorf("fps must be at least 1, got %d", c.FPS)
	}
	return nil
}

// Options converts the configuration into puzzle options.
func (c *Config) Options() []nxcube.Option {
	opts := []nxcube.Option{
		nxcube.WithMode(c.Mode),
		nxcube.WithSteps(c.Steps),
		nxcube.WithShuffleTurns(c.ShuffleTurns),
	}
	if c.Seed != 0 {
		opts = append(opts, nxcube.WithSeed(c.Seed))
	}
	return opts
}

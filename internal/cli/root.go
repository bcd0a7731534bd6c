// Package cli implements the nxcube command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/nxcube/internal/config"
	"github.com/SeamusWaldron/nxcube/internal/eventlog"
	"github.com/SeamusWaldron/nxcube/internal/recorder"
	"github.com/SeamusWaldron/nxcube/internal/storage"
)

const version = "0.1.0"

var (
	settings = config.New()
	cfg      *config.Config
	appDir   string
	logger   = zap.NewNop()
	verbose  bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "nxcube",
	Short: "NxNxN twisty cube",
	Long: `nxcube - an NxNxN twisty cube in the terminal.

Turn slices from the keyboard or mirror a GoCube smart cube over Bluetooth,
shuffle and reset, switch between standard, mirror-block and void builds,
and replay recorded sessions.

Settings come from flags, NXCUBE_* environment variables and
~/.nxcube/config.yaml, in that order of precedence.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String(config.KeyConfig, "", "Config file (default: ~/.nxcube/config.yaml)")
	pf.String(config.KeyDB, "", "Database file path (default: ~/.nxcube/nxcube.db)")
	pf.IntP(config.KeySize, "n", 3, "Puzzle size N")
	pf.StringP(config.KeyMode, "m", "standard", "Build mode: standard, mirror or void")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// loadConfig resolves settings once flags are parsed.
func loadConfig(cmd *cobra.Command, args []string) error {
	logger = eventlog.NewAppLogger(cmd.ErrOrStderr(), verbose)

	dir, err := config.DefaultDir()
	if err != nil {
		return err
	}
	appDir = dir

	if err := config.BindFlags(settings, cmd.Flags()); err != nil {
		return err
	}
	if err := config.ReadFile(settings, dir); err != nil {
		return err
	}
	c, err := config.Load(settings, dir)
	if err != nil {
		return err
	}
	cfg = c

	logger.Debug("config loaded",
		zap.String("file", cfg.File),
		zap.Int("size", cfg.Size),
		zap.Stringer("mode", cfg.Mode),
		zap.String("db", cfg.DBPath),
	)
	return nil
}

// openDB opens the journal and remembers its path in the state file.
func openDB() (*storage.DB, error) {
	db, err := storage.OpenAndMigrate(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if sf, err := openState(); err == nil && sf.State().DBPath != cfg.DBPath {
		if err := sf.SetDBPath(cfg.DBPath); err != nil {
			logger.Warn("failed to save database path", zap.Error(err))
		}
	}
	return db, nil
}

func openState() (*recorder.StateFile, error) {
	sf, err := recorder.OpenStateFile(appDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return sf, nil
}

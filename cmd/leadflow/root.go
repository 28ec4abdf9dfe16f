package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"leadflow-engine/internal/config"
	"leadflow-engine/internal/logging"
)

// Shipped template copied into the data dir on first run.
var defaultTemplate = filepath.Join("config", "config.yml")

type globalFlags struct {
	configPath string
	dataDir    string
}

type app struct {
	cfgPath string
	cfg     config.Config
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "leadflow",
		Short:         "Find, score and rank real-estate leads",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default <data-dir>/config.yml)")
	root.PersistentFlags().StringVar(&g.dataDir, "data-dir", "", "output and state directory (default $LEADFLOW_DATA_DIR or ./data)")

	root.AddCommand(
		newHuntCmd(g, kindInvestors),
		newHuntCmd(g, kindInheritance),
		newConfigCmd(g),
		newRunsCmd(g),
		newSecretCmd(g),
	)
	return root
}

func (g *globalFlags) bootstrapDir() string {
	if g.dataDir != "" {
		return g.dataDir
	}
	if v := strings.TrimSpace(os.Getenv("LEADFLOW_DATA_DIR")); v != "" {
		return v
	}
	return "data"
}

// resolveConfig returns the config path, creating the per-user copy when
// no --config was given.
func (g *globalFlags) resolveConfig() (string, error) {
	if g.configPath != "" {
		return g.configPath, nil
	}
	dir := g.bootstrapDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path, err := config.EnsureUserConfig(dir, defaultTemplate)
	if err != nil {
		return "", fmt.Errorf("config bootstrap failed: %w", err)
	}
	return path, nil
}

// readConfig loads, overlays and normalizes the config without failing on
// validation errors.
func (g *globalFlags) readConfig() (string, config.Config, config.Validation, error) {
	path, err := g.resolveConfig()
	if err != nil {
		return "", config.Config{}, config.Validation{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return path, cfg, config.Validation{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := config.OverlayEnv(&cfg, os.Getenv); err != nil {
		return path, cfg, config.Validation{}, err
	}
	if g.dataDir != "" {
		cfg.App.DataDir = g.dataDir
	}
	if cfg.App.DataDir == "" {
		cfg.App.DataDir = g.bootstrapDir()
	}
	cfg, v := config.NormalizeAndValidate(cfg)
	return path, cfg, v, nil
}

func (g *globalFlags) load() (*app, error) {
	path, cfg, v, err := g.readConfig()
	if err != nil {
		return nil, err
	}
	if !v.OK() {
		return nil, fmt.Errorf("invalid config %s:\n- %s", path, strings.Join(v.Errors, "\n- "))
	}
	log, err := logging.New(logging.Options{Level: cfg.App.LogLevel, Format: cfg.App.LogFormat})
	if err != nil {
		return nil, err
	}
	for _, w := range v.Warnings {
		log.Warn("config warning", zap.String("path", path), zap.String("warning", w))
	}
	return &app{cfgPath: path, cfg: cfg, log: log}, nil
}

// dbPath resolves export.sqlite_path against the data dir. Empty means off.
func (a *app) dbPath() string {
	p := a.cfg.Export.SQLitePath
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.cfg.App.DataDir, p)
}

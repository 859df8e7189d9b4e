package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/config"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/logger"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/session"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/store"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/tuning"
)

// env is everything a command needs, opened from flags and environment.
type env struct {
	cfg     *config.Config
	log     *logger.Logger
	tuning  *tuning.Tuning
	catalog *catalog.Catalog
	store   *store.Store
	session *session.Session
}

// resolveConfig reads the environment and applies flag overrides.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("profile"); p != "" {
		cfg.ProfileID = p
	}
	if p, _ := cmd.Flags().GetString("tuning"); p != "" {
		cfg.TuningPath = p
	}
	if m, _ := cmd.Flags().GetString("log"); m != "" {
		cfg.LogMode = m
	}
	return cfg, nil
}

// loadStatic loads the tuned constants and the content banks.
func loadStatic(cfg *config.Config) (*tuning.Tuning, *catalog.Catalog, error) {
	tun, err := tuning.LoadOrDefault(cfg.TuningPath)
	if err != nil {
		return nil, nil, err
	}
	cat, err := catalog.Default()
	if err != nil {
		return nil, nil, err
	}
	return tun, cat, nil
}

// openEnv opens the store and restores the session for the configured
// profile. Callers must Close the result.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	tun, cat, err := loadStatic(cfg)
	if err != nil {
		return nil, err
	}
	if err := config.EnsureDir(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	st, err := store.Open(cfg.DBPath, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := session.Load(ctx, session.Options{
		ProfileID: cfg.ProfileID,
		Catalog:   cat,
		Tuning:    tun,
		Store:     st,
		Logger:    log,
	})
	if err != nil {
		st.Close()
		return nil, err
	}
	return &env{cfg: cfg, log: log, tuning: tun, catalog: cat, store: st, session: s}, nil
}

func (e *env) Close() {
	e.store.Close()
	e.log.Sync()
}

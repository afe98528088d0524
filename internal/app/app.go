package app

import (
	"path/filepath"

	"fuzex/internal/extractor"
	"fuzex/internal/services/enrollment"
	"fuzex/internal/store"
)

// App is the dependency graph behind the CLI. The extractor is built
// eagerly so parameter errors surface before any subcommand runs; the
// vault is opened on first use so read-only commands like plan never
// create or lock the database file.
type App struct {
	Extractor *extractor.Extractor

	home  string
	vault *store.Vault
}

// New plans the extractor from cfg and returns the app.
func New(cfg Config) (*App, error) {
	var opts []extractor.Option
	if cfg.FailureBound > 0 {
		opts = append(opts, extractor.WithReproductionFailureBound(cfg.FailureBound))
	}
	if cfg.ForgeryBound > 0 {
		opts = append(opts, extractor.WithForgeryBound(cfg.ForgeryBound))
	}
	if cfg.LockerCeiling > 0 {
		opts = append(opts, extractor.WithLockerCeiling(cfg.LockerCeiling))
	}
	ext, err := extractor.New(cfg.InputBits, cfg.MaxHammingErrors, opts...)
	if err != nil {
		return nil, err
	}
	return &App{Extractor: ext, home: cfg.Home}, nil
}

// Enrollments opens the vault if needed and returns the enrollment service.
func (a *App) Enrollments() (*enrollment.Service, error) {
	if a.vault == nil {
		v, err := store.Open(filepath.Join(a.home, "vault.db"))
		if err != nil {
			return nil, err
		}
		a.vault = v
	}
	return enrollment.New(a.Extractor, a.vault), nil
}

// Close releases the vault if it was opened.
func (a *App) Close() error {
	if a.vault == nil {
		return nil
	}
	return a.vault.Close()
}

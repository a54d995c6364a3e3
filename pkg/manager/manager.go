package manager

import (
	"context"

	"github.com/arthur-debert/agm/pkg/activation"
	"github.com/arthur-debert/agm/pkg/archive"
	"github.com/arthur-debert/agm/pkg/config"
	"github.com/arthur-debert/agm/pkg/datastore"
	"github.com/arthur-debert/agm/pkg/install"
	"github.com/arthur-debert/agm/pkg/status"
	"github.com/arthur-debert/agm/pkg/types"
)

// Manager is the entry point for every agm operation
type Manager struct {
	fs        types.FS
	store     datastore.DataStore
	cfg       *config.Config
	engine    *activation.Engine
	installer *install.Installer
	checker   *status.Checker
}

// New builds a manager. A nil cfg means config.Default().
func New(fs types.FS, store datastore.DataStore, cfg *config.Config) *Manager {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Manager{
		fs:        fs,
		store:     store,
		cfg:       cfg,
		engine:    activation.New(fs, store, activation.WithRollback(cfg.Activation.Rollback)),
		installer: install.New(fs, store, archive.New()),
		checker:   status.NewChecker(fs, store),
	}
}

// Engine exposes the activation engine
func (m *Manager) Engine() *activation.Engine {
	return m.engine
}

// Store exposes the record store
func (m *Manager) Store() datastore.DataStore {
	return m.store
}

// Config returns the configuration the manager was built with
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// Status reports the link state of one game
func (m *Manager) Status(game string) (*status.Report, error) {
	return m.checker.Check(game)
}

// StatusAll reports every game
func (m *Manager) StatusAll(ctx context.Context) ([]*status.Report, error) {
	return m.checker.CheckAll(ctx)
}

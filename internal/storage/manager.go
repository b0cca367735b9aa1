// Package storage provides the StorageManager that owns the analysis
// store lifecycle.
package storage

import (
	"fmt"

	"github.com/alokagarwal565/scenario-advisor/internal/common"
	"github.com/alokagarwal565/scenario-advisor/internal/interfaces"
	"github.com/alokagarwal565/scenario-advisor/internal/storage/badger"
)

// Manager implements interfaces.StorageManager over a single BadgerHold
// database.
type Manager struct {
	store    *badger.Store
	analyses interfaces.AnalysisStore
	logger   *common.Logger
}

var _ interfaces.StorageManager = (*Manager)(nil)

// NewManager opens the analysis store at the configured path.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	store, err := badger.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis store: %w", err)
	}

	logger.Info().Str("path", config.Storage.Path).Msg("Storage manager initialized")

	return &Manager{
		store:    store,
		analyses: badger.NewAnalysisStorage(store, logger),
		logger:   logger,
	}, nil
}

func (m *Manager) AnalysisStore() interfaces.AnalysisStore {
	return m.analyses
}

// Close releases the underlying database.
func (m *Manager) Close() error {
	return m.store.Close()
}

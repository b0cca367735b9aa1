// Package badger provides BadgerHold-based persistence for analysis results.
package badger

import (
	"fmt"
	"os"

	"github.com/timshannon/badgerhold/v4"

	"github.com/alokagarwal565/scenario-advisor/internal/common"
)

// Store wraps a BadgerHold database handle shared by the storage areas.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore opens (or creates) a BadgerHold database under path.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", path, err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = path
	options.ValueDir = path
	options.Logger = nil // badger's own logger is too chatty

	db, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open analysis database: %w", err)
	}

	logger.Debug().Str("path", path).Msg("Analysis store opened")

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

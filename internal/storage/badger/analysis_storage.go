package badger

import (
	"context"
	"fmt"
	"sort"

	"github.com/timshannon/badgerhold/v4"

	"github.com/alokagarwal565/scenario-advisor/internal/common"
	"github.com/alokagarwal565/scenario-advisor/internal/interfaces"
	"github.com/alokagarwal565/scenario-advisor/internal/models"
)

// ErrAnalysisNotFound is returned when no analysis exists for an ID.
var ErrAnalysisNotFound = fmt.Errorf("analysis not found")

type analysisStorage struct {
	store  *Store
	logger *common.Logger
}

var _ interfaces.AnalysisStore = (*analysisStorage)(nil)

// NewAnalysisStorage creates an AnalysisStore backed by BadgerHold.
func NewAnalysisStorage(store *Store, logger *common.Logger) interfaces.AnalysisStore {
	return &analysisStorage{store: store, logger: logger}
}

func (s *analysisStorage) SaveAnalysis(_ context.Context, result *models.AnalysisResult) error {
	if result.ID == "" {
		return fmt.Errorf("analysis result has no ID")
	}
	if err := s.store.db.Upsert(result.ID, result); err != nil {
		return fmt.Errorf("failed to save analysis %s: %w", result.ID, err)
	}
	s.logger.Debug().Str("analysis_id", result.ID).Msg("Analysis saved")
	return nil
}

func (s *analysisStorage) GetAnalysis(_ context.Context, id string) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	err := s.store.db.Get(id, &result)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("analysis '%s': %w", id, ErrAnalysisNotFound)
		}
		return nil, fmt.Errorf("failed to get analysis '%s': %w", id, err)
	}
	return &result, nil
}

func (s *analysisStorage) ListAnalyses(_ context.Context) ([]*models.AnalysisResult, error) {
	var results []models.AnalysisResult
	if err := s.store.db.Find(&results, nil); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	out := make([]*models.AnalysisResult, len(results))
	for i := range results {
		out[i] = &results[i]
	}
	// Newest first for listing UIs.
	sort.Slice(out, func(i, j int) bool {
		return out[i].GeneratedAt.After(out[j].GeneratedAt)
	})
	return out, nil
}

func (s *analysisStorage) DeleteAnalysis(_ context.Context, id string) error {
	err := s.store.db.Delete(id, models.AnalysisResult{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete analysis '%s': %w", id, err)
	}
	s.logger.Debug().Str("analysis_id", id).Msg("Analysis deleted")
	return nil
}

package interfaces

import (
	"context"

	"github.com/alokagarwal565/scenario-advisor/internal/models"
)

// AnalysisService runs scenario analyses against portfolio snapshots.
type AnalysisService interface {
	// Analyze runs one full analysis pass. It returns an error only for
	// invalid input; text-generator unavailability is recovered into the
	// fallback result, never surfaced to the caller.
	Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error)

	// PredefinedScenarios returns the curated scenario catalog for UIs.
	PredefinedScenarios() []string
}

// AnalysisStore persists analysis results as opaque records.
type AnalysisStore interface {
	SaveAnalysis(ctx context.Context, result *models.AnalysisResult) error
	GetAnalysis(ctx context.Context, id string) (*models.AnalysisResult, error)
	ListAnalyses(ctx context.Context) ([]*models.AnalysisResult, error)
	DeleteAnalysis(ctx context.Context, id string) error
}

// StorageManager bundles the storage areas behind one lifecycle.
type StorageManager interface {
	AnalysisStore() AnalysisStore
	Close() error
}

package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alokagarwal565/scenario-advisor/internal/common"
	"github.com/alokagarwal565/scenario-advisor/internal/interfaces"
	"github.com/alokagarwal565/scenario-advisor/internal/models"
)

func newTestStorage(t *testing.T) interfaces.AnalysisStore {
	t.Helper()
	logger := common.NewLogger("error")
	store, err := NewStore(logger, t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewAnalysisStorage(store, logger)
}

func resultWithID(id string, generatedAt time.Time) *models.AnalysisResult {
	return &models.AnalysisResult{
		ID:             id,
		Scenario:       "Oil prices surge by 20%",
		Narrative:      "Energy holdings benefit while transport suffers.",
		RiskAssessment: models.RiskMedium,
		Source:         models.NarrativeSourceAI,
		GeneratedAt:    generatedAt,
	}
}

func TestSaveAndGetAnalysis(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	original := resultWithID("id-1", time.Now().UTC())
	if err := storage.SaveAnalysis(ctx, original); err != nil {
		t.Fatalf("SaveAnalysis failed: %v", err)
	}

	got, err := storage.GetAnalysis(ctx, "id-1")
	if err != nil {
		t.Fatalf("GetAnalysis failed: %v", err)
	}
	if got.Scenario != original.Scenario {
		t.Errorf("Scenario = %q, want %q", got.Scenario, original.Scenario)
	}
	if got.RiskAssessment != models.RiskMedium {
		t.Errorf("RiskAssessment = %v", got.RiskAssessment)
	}
}

func TestSaveAnalysisRequiresID(t *testing.T) {
	storage := newTestStorage(t)

	if err := storage.SaveAnalysis(context.Background(), &models.AnalysisResult{}); err == nil {
		t.Error("SaveAnalysis accepted a result without an ID")
	}
}

func TestGetAnalysisNotFound(t *testing.T) {
	storage := newTestStorage(t)

	_, err := storage.GetAnalysis(context.Background(), "missing")
	if !errors.Is(err, ErrAnalysisNotFound) {
		t.Errorf("error = %v, want ErrAnalysisNotFound", err)
	}
}

func TestListAnalysesNewestFirst(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i, id := range []string{"old", "mid", "new"} {
		r := resultWithID(id, base.Add(time.Duration(i)*time.Minute))
		if err := storage.SaveAnalysis(ctx, r); err != nil {
			t.Fatalf("SaveAnalysis(%s) failed: %v", id, err)
		}
	}

	results, err := storage.ListAnalyses(ctx)
	if err != nil {
		t.Fatalf("ListAnalyses failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("listed %d results, want 3", len(results))
	}
	if results[0].ID != "new" || results[2].ID != "old" {
		t.Errorf("order = [%s %s %s], want newest first", results[0].ID, results[1].ID, results[2].ID)
	}
}

func TestDeleteAnalysis(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	if err := storage.SaveAnalysis(ctx, resultWithID("gone", time.Now().UTC())); err != nil {
		t.Fatalf("SaveAnalysis failed: %v", err)
	}
	if err := storage.DeleteAnalysis(ctx, "gone"); err != nil {
		t.Fatalf("DeleteAnalysis failed: %v", err)
	}
	if _, err := storage.GetAnalysis(ctx, "gone"); !errors.Is(err, ErrAnalysisNotFound) {
		t.Errorf("deleted record still readable: %v", err)
	}

	// Deleting a missing record is not an error.
	if err := storage.DeleteAnalysis(ctx, "never-existed"); err != nil {
		t.Errorf("DeleteAnalysis(missing) = %v, want nil", err)
	}
}

func TestUpsertOverwrites(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	first := resultWithID("same", time.Now().UTC())
	if err := storage.SaveAnalysis(ctx, first); err != nil {
		t.Fatalf("SaveAnalysis failed: %v", err)
	}

	second := resultWithID("same", time.Now().UTC())
	second.Narrative = "Updated narrative"
	if err := storage.SaveAnalysis(ctx, second); err != nil {
		t.Fatalf("SaveAnalysis (overwrite) failed: %v", err)
	}

	got, err := storage.GetAnalysis(ctx, "same")
	if err != nil {
		t.Fatalf("GetAnalysis failed: %v", err)
	}
	if got.Narrative != "Updated narrative" {
		t.Errorf("Narrative = %q, want the overwritten value", got.Narrative)
	}
}

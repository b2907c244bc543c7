package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/chasinalts/comet-scanner-wizard/internal/logger"
	"github.com/chasinalts/comet-scanner-wizard/internal/repos"
	"github.com/chasinalts/comet-scanner-wizard/internal/types"
	"github.com/chasinalts/comet-scanner-wizard/internal/wizard"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	return log
}

func newTestTemplateService(t *testing.T) TemplateService {
	t.Helper()
	return NewTemplateService(nil, testLogger(t), nil)
}

func newDBBackedTemplateService(t *testing.T) TemplateService {
	t.Helper()
	log := testLogger(t)
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "wizard.db")), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.User{}, &types.SavedTemplate{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewTemplateService(db, log, repos.NewSavedTemplateRepo(db, log))
}

func TestSaveSnapshotUpsertsByName(t *testing.T) {
	ts := newDBBackedTemplateService(t)
	ctx := context.Background()
	userID := uuid.New()

	first, err := ts.SaveSnapshot(ctx, userID, "alpha", nil, "v1", false)
	if err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	second, err := ts.SaveSnapshot(ctx, userID, "alpha", nil, "v2", true)
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("re-save created a new snapshot: ids %s vs %s", first.ID, second.ID)
	}

	stored, err := ts.GetSnapshot(ctx, userID, "alpha")
	if err != nil {
		t.Fatalf("GetSnapshot failed: %v", err)
	}
	if stored.Code != "v2" {
		t.Errorf("code = %q, want v2", stored.Code)
	}
	if !stored.IsComplete {
		t.Error("is_complete not persisted by re-save")
	}

	snapshots, err := ts.ListSnapshots(ctx, userID)
	if err != nil {
		t.Fatalf("ListSnapshots failed: %v", err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("expected 1 snapshot after upsert, got %d", len(snapshots))
	}
}

func TestListSnapshotsNewestSavedFirst(t *testing.T) {
	ts := newDBBackedTemplateService(t)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := ts.SaveSnapshot(ctx, userID, "alpha", nil, "a1", false); err != nil {
		t.Fatalf("save alpha failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := ts.SaveSnapshot(ctx, userID, "beta", nil, "b1", false); err != nil {
		t.Fatalf("save beta failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	// Re-saving an existing name is a fresh save; it must list first.
	if _, err := ts.SaveSnapshot(ctx, userID, "alpha", nil, "a2", true); err != nil {
		t.Fatalf("re-save alpha failed: %v", err)
	}

	snapshots, err := ts.ListSnapshots(ctx, userID)
	if err != nil {
		t.Fatalf("ListSnapshots failed: %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snapshots))
	}
	if snapshots[0].Name != "alpha" {
		t.Errorf("first snapshot = %q, want alpha (most recently saved)", snapshots[0].Name)
	}
	if snapshots[1].Name != "beta" {
		t.Errorf("second snapshot = %q, want beta", snapshots[1].Name)
	}
}

func TestDecodeAnswers(t *testing.T) {
	ts := newTestTemplateService(t)

	raw := datatypes.JSON(`{
		"q1": {"state": "answered", "type": "string", "value": "AAPL"},
		"q2": {"state": "skipped", "type": "boolean"}
	}`)

	answers := ts.DecodeAnswers(raw)
	if len(answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(answers))
	}
	a1, ok := answers["q1"]
	if !ok {
		t.Fatal("missing answer for q1")
	}
	if a1.State != wizard.AnswerStateAnswered || a1.Value != "AAPL" {
		t.Errorf("q1 = %+v, want answered AAPL", a1)
	}
	a2, ok := answers["q2"]
	if !ok {
		t.Fatal("missing answer for q2")
	}
	if a2.State != wizard.AnswerStateSkipped {
		t.Errorf("q2 state = %q, want skipped", a2.State)
	}
}

func TestDecodeAnswersMalformed(t *testing.T) {
	ts := newTestTemplateService(t)

	tests := []struct {
		name string
		raw  datatypes.JSON
	}{
		{name: "empty payload", raw: nil},
		{name: "truncated json", raw: datatypes.JSON(`{"q1": {`)},
		{name: "wrong shape", raw: datatypes.JSON(`["not", "a", "map"]`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := ts.DecodeAnswers(tt.raw)
			if answers == nil {
				t.Fatal("expected non-nil map")
			}
			if len(answers) != 0 {
				t.Errorf("expected empty map, got %d entries", len(answers))
			}
		})
	}
}

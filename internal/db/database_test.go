package db

import (
	"path/filepath"
	"testing"

	"github.com/chasinalts/comet-scanner-wizard/internal/logger"
	"github.com/chasinalts/comet-scanner-wizard/internal/types"
)

func TestAutoMigrateAllOnSqlite(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "wizard.db"))

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}

	service, err := NewDatabaseService(log)
	if err != nil {
		t.Fatalf("NewDatabaseService failed: %v", err)
	}
	if err := service.AutoMigrateAll(); err != nil {
		t.Fatalf("AutoMigrateAll failed on sqlite: %v", err)
	}

	migrator := service.DB().Migrator()
	for _, model := range []interface{}{
		&types.User{},
		&types.UserToken{},
		&types.Question{},
		&types.SavedTemplate{},
		&types.SiteContent{},
		&types.GalleryImage{},
	} {
		if !migrator.HasTable(model) {
			t.Errorf("table for %T was not created", model)
		}
	}
}

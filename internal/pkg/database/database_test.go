package database

import (
	"path/filepath"
	"testing"

	"github.com/weibaohui/landingkit/internal/model"
)

func TestInitDBSqliteCreatesDirAndTables(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "app.db")

	db, err := InitDB("sqlite", dsn)
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	for _, m := range model.AllModels() {
		if !db.Migrator().HasTable(m) {
			t.Errorf("expected table for %T", m)
		}
	}
}

package migration

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestApplyMigrations(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql":     {Data: []byte("CREATE TABLE recipes (id TEXT PRIMARY KEY);")},
		"002_add_name.sql": {Data: []byte("ALTER TABLE recipes ADD COLUMN name TEXT;")},
		"README.md":        {Data: []byte("ignored")},
	}
	runner := NewRunner(db, fsys, DialectSQLite)

	var logs []string
	n, err := runner.ApplyMigrations(func(s string) { logs = append(logs, s) })
	if err != nil {
		t.Fatalf("ApplyMigrations() error: %v", err)
	}
	if n != 2 {
		t.Errorf("applied = %d, want 2", n)
	}
	if len(logs) == 0 || !strings.Contains(logs[0], "migration 1: init") {
		t.Errorf("unexpected logs: %v", logs)
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion() error: %v", err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}

	if _, err := db.Exec("INSERT INTO recipes (id, name) VALUES ('r1', 'Omelette')"); err != nil {
		t.Errorf("schema not applied: %v", err)
	}

	n, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations() error: %v", err)
	}
	if n != 0 {
		t.Errorf("second run applied %d migrations, want 0", n)
	}
}

func TestApplyMigrations_FailureRollsBack(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql":   {Data: []byte("CREATE TABLE a (id INTEGER);")},
		"002_broken.sql": {Data: []byte("CREATE TABLE b (id INTEGER); THIS IS NOT SQL;")},
	}
	runner := NewRunner(db, fsys, DialectSQLite)

	n, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if n != 1 {
		t.Errorf("applied = %d, want 1", n)
	}
	version, _ := runner.GetCurrentVersion()
	if version != 1 {
		t.Errorf("version = %d, want 1", version)
	}
}

func TestReadMigrationFiles_Invalid(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"no underscore", fstest.MapFS{"001.sql": {Data: []byte("")}}},
		{"non numeric", fstest.MapFS{"abc_init.sql": {Data: []byte("")}}},
		{"zero version", fstest.MapFS{"000_init.sql": {Data: []byte("")}}},
		{"duplicate", fstest.MapFS{
			"001_a.sql": {Data: []byte("")},
			"01_b.sql":  {Data: []byte("")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(nil, tt.fsys, DialectSQLite)
			if _, err := runner.ReadMigrationFiles(); err == nil {
				t.Error("ReadMigrationFiles() expected error")
			}
		})
	}
}

func TestValidateVersion_NewerDatabase(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{"001_init.sql": {Data: []byte("CREATE TABLE a (id INTEGER);")}}
	runner := NewRunner(db, fsys, DialectSQLite)

	if err := runner.EnsureSchemaVersionTable(); err != nil {
		t.Fatalf("EnsureSchemaVersionTable() error: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (5)"); err != nil {
		t.Fatalf("seeding version: %v", err)
	}

	if err := runner.ValidateVersion(); err == nil || !strings.Contains(err.Error(), "newer than supported") {
		t.Errorf("ValidateVersion() error = %v, want newer-schema error", err)
	}
	if _, err := runner.Pending(); err == nil {
		t.Error("Pending() expected error for newer database")
	}
}

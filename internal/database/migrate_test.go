package database

import (
	"io/fs"
	"strings"
	"testing"
)

// TestMigrationsEmbedded は埋め込みマイグレーションが対で揃っていることを検証する。
func TestMigrationsEmbedded(t *testing.T) {
	t.Parallel()

	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("failed to read embedded migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no migration files embedded")
	}

	ups := make(map[string]bool)
	downs := make(map[string]bool)
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected migration file: %s", name)
		}
	}

	// すべてのupマイグレーションに対応するdownが存在すること
	for base := range ups {
		if !downs[base] {
			t.Errorf("missing down migration for %s", base)
		}
	}
	for base := range downs {
		if !ups[base] {
			t.Errorf("missing up migration for %s", base)
		}
	}
}

func TestMigrationsContainCoreTables(t *testing.T) {
	t.Parallel()

	var all strings.Builder
	err := fs.WalkDir(migrationsFS, "migrations", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".up.sql") {
			return err
		}
		data, err := fs.ReadFile(migrationsFS, path)
		if err != nil {
			return err
		}
		all.Write(data)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk migrations: %v", err)
	}

	sql := all.String()
	for _, table := range []string{"users", "game_results"} {
		if !strings.Contains(sql, table) {
			t.Errorf("up migrations should create table %s", table)
		}
	}
}

// Package testutil provides shared test helpers for setting up question
// libraries and answer databases.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mkarlsen/tally/internal/library"
	"github.com/mkarlsen/tally/internal/store"
)

// TestDB creates a temporary SQLite answer database that is automatically
// cleaned up.
func TestDB(t *testing.T) *store.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "tally-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestLibrary creates a temporary library directory populated with the given
// source files (name -> content) and returns it with a library.FS over it.
func TestLibrary(t *testing.T, files map[string]string) (string, *library.FS) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	lib, err := library.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, lib
}

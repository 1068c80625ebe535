package kvstore

import (
	"context"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v; want not found", ok, err)
	}

	if err := s.Set(ctx, "spotify_access_token", "abc"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "spotify_access_token", "def"); err != nil {
		t.Fatalf("Set (overwrite): %v", err)
	}

	got, ok, err := s.Get(ctx, "spotify_access_token")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || got != "def" {
		t.Errorf("Get() = %q, %v; want \"def\", true", got, ok)
	}
}

func TestMemory(t *testing.T) {
	testStore(t, NewMemory())
}

func TestSQLite(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "recap.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	testStore(t, s)
}

func TestSQLite_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recap.db")
	ctx := context.Background()

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := s.Set(ctx, "spotify_token_expiry", "1700000000000"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, ok, err := s.Get(ctx, "spotify_token_expiry")
	if err != nil || !ok || got != "1700000000000" {
		t.Errorf("Get() after reopen = %q, %v, %v", got, ok, err)
	}
}

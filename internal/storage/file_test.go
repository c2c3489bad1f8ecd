package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aliskhannn/kanji-cards/internal/repository"
)

func TestFileStateStorage_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	s, err := NewFileStateStorage(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.Load(ctx, "kanjiAppState"); !errors.Is(err, repository.ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound, got %v", err)
	}

	if err := s.Save(ctx, "kanjiAppState", []byte(`{"currentIndex":3}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SaveMany(ctx, map[string][]byte{
		"kanjiAppState:1": []byte(`{"currentIndex":1}`),
		"kanjiAppState:2": []byte(`{"currentIndex":2}`),
	}); err != nil {
		t.Fatalf("save many: %v", err)
	}

	reopened, err := NewFileStateStorage(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}

	cases := map[string]string{
		"kanjiAppState":   `{"currentIndex":3}`,
		"kanjiAppState:1": `{"currentIndex":1}`,
		"kanjiAppState:2": `{"currentIndex":2}`,
	}
	for key, want := range cases {
		got, err := reopened.Load(ctx, key)
		if err != nil {
			t.Fatalf("load %s: %v", key, err)
		}
		if string(got) != want {
			t.Fatalf("expected %s for %s, got %s", want, key, got)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the state file to remain, got %d entries", len(entries))
	}
}

func TestFileStateStorage_CorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := NewFileStateStorage(path)
	if !errors.Is(err, ErrCorruptStateFile) {
		t.Fatalf("expected ErrCorruptStateFile, got %v", err)
	}
	if s == nil {
		t.Fatalf("expected a usable store")
	}

	if err := s.Save(ctx, "kanjiAppState", []byte(`{}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := NewFileStateStorage(path); err != nil {
		t.Fatalf("expected the file to be rewritten, got %v", err)
	}
}

func TestFileStateStorage_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := NewFileStateStorage(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.Load(context.Background(), "kanjiAppState"); !errors.Is(err, repository.ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound, got %v", err)
	}
}

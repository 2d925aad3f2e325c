package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gearbox-games/garage/internal/card"
	"github.com/gearbox-games/garage/internal/logging"
)

func TestWatcher_ReloadsOnExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	s, err := Open(path, logging.Nop())
	if err != nil {
		t.Fatal(err)
	}

	w, err := Watch(s, logging.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = w.Close() }()

	external := []card.Card{{ID: "x1", Name: "External Card", Type: card.TypeGear}}
	data, err := json.Marshal(external)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Changed():
	case <-time.After(5 * time.Second):
		t.Fatal("no change signal after external write")
	}

	if _, ok := s.CardByID("x1"); !ok {
		t.Error("store not reloaded with external card")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "catalog.json"), logging.Nop())
	if err != nil {
		t.Fatal(err)
	}

	w, err := Watch(s, logging.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = w.Close() }()

	if err := os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Changed():
		t.Error("got change signal for unrelated file")
	case <-time.After(500 * time.Millisecond):
	}
}

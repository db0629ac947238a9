package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsSpecWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, PlayerFile), []byte("name: x\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case name := <-w.Events:
			if filepath.Base(name) == "notes.txt" {
				t.Fatalf("non-spec file reported")
			}
			if filepath.Base(name) == PlayerFile {
				return
			}
		case <-deadline:
			t.Fatalf("no event for %s", PlayerFile)
		}
	}
}

func TestPrefabWatcherReportsScriptEdits(t *testing.T) {
	root := t.TempDir()
	scripts := filepath.Join(root, "scripts")
	if err := os.Mkdir(scripts, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	w, err := NewPrefabWatcher(root)
	if err != nil {
		t.Fatalf("NewPrefabWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(scripts, "hop.tengo"), []byte("input := func(tick, t) { return {} }\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case name := <-w.Events:
			if filepath.Base(name) == "hop.tengo" {
				return
			}
		case <-deadline:
			t.Fatalf("no event for scripts/hop.tengo")
		}
	}
}

func TestPrefabWatcherWithoutScriptsDir(t *testing.T) {
	w, err := NewPrefabWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewPrefabWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if got := w.Poll(); len(got) != 0 {
		t.Fatalf("Poll after close = %v", got)
	}
}

func TestIsSpecFile(t *testing.T) {
	cases := map[string]bool{
		"player.yaml":   true,
		"LEVEL.YML":     true,
		"script.tengo":  false,
		"readme.md":     false,
		"prefabs/x.yml": true,
	}
	for path, want := range cases {
		if got := isSpecFile(path); got != want {
			t.Fatalf("isSpecFile(%q) = %v, want %v", path, got, want)
		}
	}
}

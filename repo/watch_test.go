package repo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherDeliversLevelIDs(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "lvl-1.yaml"), []byte("id: lvl-1\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	// Non-level files never reach the channel.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case id := <-w.Events:
		if id != "lvl-1" {
			t.Fatalf("delivered id %q, want lvl-1", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event delivered for level file write")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestTrySendErrNeverBlocks(t *testing.T) {
	ch := make(chan error, 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		// More sends than buffer: overflow is dropped, not blocked on.
		trySendErr(ch, errors.New("first"))
		trySendErr(ch, errors.New("second"))
		trySendErr(ch, errors.New("third"))
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("error send blocked on a full channel")
	}
	if len(ch) != 1 {
		t.Fatalf("buffer holds %d errors, want 1", len(ch))
	}
	if err := <-ch; err.Error() != "first" {
		t.Fatalf("kept %q, want the first error", err)
	}
}

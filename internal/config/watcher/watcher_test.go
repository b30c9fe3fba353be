package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap/zaptest"
)

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestConvertOp(t *testing.T) {
	tests := []struct {
		in   fsnotify.Op
		want Operation
	}{
		{fsnotify.Write, OpWrite},
		{fsnotify.Create, OpCreate},
		{fsnotify.Remove, OpRemove},
		{fsnotify.Rename, OpRename},
		{fsnotify.Create | fsnotify.Write, OpCreate},
		{fsnotify.Chmod, OpWrite},
	}
	for _, tt := range tests {
		if got := convertOp(tt.in); got != tt.want {
			t.Errorf("convertOp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWatcher_DeliversWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chrome.yaml")
	if err := os.WriteFile(path, []byte("toolbar_location: top\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	events := make(chan Event, 8)
	w, err := New(path, func(ev Event) { events <- ev },
		WithDebounce(10*time.Millisecond), WithLogger(zaptest.NewLogger(t)))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Close()

	// Writes to siblings must be ignored.
	_ = os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644)
	if err := os.WriteFile(path, []byte("toolbar_location: bottom\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-events:
		if ev.Path != w.Path() {
			t.Errorf("event path = %q, want %q", ev.Path, w.Path())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event delivered")
	}
}

func TestWatcher_CloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chrome.yaml")
	w, err := New(path, func(Event) {})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

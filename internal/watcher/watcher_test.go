package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/legal-os/internal/logger"
)

func TestIsEvidenceFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/inbox/call.mp3", true},
		{"/inbox/CALL.M4A", true},
		{"/inbox/claim.pdf", true},
		{"/inbox/contract.docx", true},
		{"/inbox/notes.txt", true},
		{"/inbox/photo.jpg", false},
		{"/inbox/.hidden.mp3", false},
		{"/inbox/~$contract.docx", false},
		{"/inbox/download.crdownload", false},
	}

	for _, tt := range tests {
		if got := isEvidenceFile(tt.path); got != tt.want {
			t.Errorf("isEvidenceFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcherHandlesFilesSequentially(t *testing.T) {
	dir := t.TempDir()

	// present before start
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	var seen []string
	active := 0
	overlap := false
	done := make(chan struct{}, 8)

	handler := func(ctx context.Context, path string) error {
		mu.Lock()
		active++
		if active > 1 {
			overlap = true
		}
		mu.Unlock()

		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		active--
		seen = append(seen, filepath.Base(path))
		mu.Unlock()
		done <- struct{}{}
		return nil
	}

	w, err := New(dir, handler, logger.Nop(), 0)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- w.Start(ctx) }()

	wait := func() {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for handler")
		}
	}

	wait()
	for _, name := range []string{"b.mp3", "c.docx"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "ignored.png"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	wait()
	wait()

	cancel()
	select {
	case <-errc:
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	if overlap {
		t.Error("handler ran concurrently")
	}
	want := []string{"a.txt", "b.mp3", "c.docx"}
	if len(seen) != len(want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("seen = %v, want %v", seen, want)
			break
		}
	}
}

func TestNewMissingInbox(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing"), nil, logger.Nop(), 0); err == nil {
		t.Error("expected error for missing inbox")
	}
}

package logs_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"pokedexd/internal/logs"
)

// syncBuffer guards concurrent writes from the follow goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pokedexd.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestReadLastReturnsTrailingLines(t *testing.T) {
	path := writeLog(t, "one\ntwo\nthree\nfour\n")

	lines, offset, err := logs.ReadLast(path, 2)
	if err != nil {
		t.Fatalf("read last: %v", err)
	}
	if len(lines) != 2 || lines[0] != "three" || lines[1] != "four" {
		t.Fatalf("unexpected lines: %v", lines)
	}
	if offset <= 0 {
		t.Fatalf("expected positive offset, got %d", offset)
	}
}

func TestReadLastShortFile(t *testing.T) {
	path := writeLog(t, "only\n")

	lines, _, err := logs.ReadLast(path, 10)
	if err != nil {
		t.Fatalf("read last: %v", err)
	}
	if len(lines) != 1 || lines[0] != "only" {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

func TestReadLastMissingFile(t *testing.T) {
	lines, offset, err := logs.ReadLast(filepath.Join(t.TempDir(), "absent.log"), 5)
	if err != nil {
		t.Fatalf("read last: %v", err)
	}
	if len(lines) != 0 || offset != 0 {
		t.Fatalf("expected empty result, got %v at %d", lines, offset)
	}
}

func TestFollowStreamsAppendedLines(t *testing.T) {
	path := writeLog(t, "old\n")

	_, offset, err := logs.ReadLast(path, 0)
	if err != nil {
		t.Fatalf("read offset: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	buf := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		done <- logs.Follow(ctx, path, offset, buf)
	}()

	time.Sleep(50 * time.Millisecond)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open for append: %v", err)
	}
	if _, err := f.WriteString("fresh\n"); err != nil {
		t.Fatalf("append: %v", err)
	}
	f.Close()

	deadline := time.After(2 * time.Second)
	for !strings.Contains(buf.String(), "fresh") {
		select {
		case <-deadline:
			t.Fatalf("follow never saw appended line, got %q", buf.String())
		case <-time.After(50 * time.Millisecond):
		}
	}
	cancel()

	if err := <-done; err != nil {
		t.Fatalf("follow: %v", err)
	}
	if strings.Contains(buf.String(), "old") {
		t.Fatalf("follow replayed old content: %q", buf.String())
	}
}

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_EmptyPathIsNop(t *testing.T) {
	l, err := New("")
	if err != nil {
		t.Fatalf("New(\"\") error: %v", err)
	}
	l.Log("dropped %d", 1)
	if err := l.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestNew_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "jrny.log")

	l, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	l.Log("toggled step %d", 3)
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "jrny log opened") {
		t.Errorf("missing header in %q", data)
	}
	if !strings.Contains(string(data), "toggled step 3") {
		t.Errorf("missing message in %q", data)
	}
}

func TestWith_PrefixesComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf).With("coordinator")
	l.Log("hello %s", "world")

	if !strings.Contains(buf.String(), "coordinator: hello world") {
		t.Errorf("output = %q, want component prefix", buf.String())
	}
}

func TestNilLogger(t *testing.T) {
	var l *Logger
	l.Log("nothing")
	if l.With("x") != nil {
		t.Error("With on nil logger should return nil")
	}
	if err := l.Close(); err != nil {
		t.Errorf("Close on nil logger: %v", err)
	}
	Nop().Log("also nothing")
}

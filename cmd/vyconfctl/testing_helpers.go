package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// writeTestConfig writes config text to a temp file and returns its path.
func writeTestConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.boot")
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	return path
}

// captureOutput captures stdout while running a function.
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}

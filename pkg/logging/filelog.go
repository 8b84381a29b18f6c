// Package logging provides a size-rotated log file writer for audit
// trails.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileWriter is an io.Writer appending to a local file with rotation.
// When the file reaches MaxSize bytes it is renamed to path.1 and a
// fresh file is started; up to MaxFiles rotated files are kept.
type FileWriter struct {
	mu       sync.Mutex
	file     *os.File
	path     string
	maxSize  int64
	maxFiles int
	written  int64
}

// FileConfig configures a FileWriter.
type FileConfig struct {
	Path     string // log file path
	MaxSize  int64  // max file size in bytes (default: 10MB)
	MaxFiles int    // number of rotated files to keep (default: 5)
}

// NewFileWriter opens (or creates) the log file for appending.
func NewFileWriter(cfg FileConfig) (*FileWriter, error) {
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = 10 * 1024 * 1024
	}
	maxFiles := cfg.MaxFiles
	if maxFiles <= 0 {
		maxFiles = 5
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	w := &FileWriter{
		file:     f,
		path:     cfg.Path,
		maxSize:  maxSize,
		maxFiles: maxFiles,
	}
	if info, err := f.Stat(); err == nil {
		w.written = info.Size()
	}
	return w, nil
}

// Write implements io.Writer, rotating when the size limit is reached.
func (w *FileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return 0, fmt.Errorf("log file closed")
	}

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	w.written += int64(n)

	if w.written >= w.maxSize {
		if err := w.rotate(); err != nil {
			return n, err
		}
	}
	return n, nil
}

// Close closes the log file.
func (w *FileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file != nil {
		err := w.file.Close()
		w.file = nil
		return err
	}
	return nil
}

func (w *FileWriter) rotate() error {
	w.file.Close()
	w.file = nil

	for i := w.maxFiles - 1; i > 0; i-- {
		old := fmt.Sprintf("%s.%d", w.path, i)
		next := fmt.Sprintf("%s.%d", w.path, i+1)
		os.Rename(old, next)
	}
	os.Rename(w.path, w.path+".1")
	os.Remove(fmt.Sprintf("%s.%d", w.path, w.maxFiles+1))

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("reopen rotated log file: %w", err)
	}
	w.file = f
	w.written = 0
	return nil
}

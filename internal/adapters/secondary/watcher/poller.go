package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fredcamaral/docdeck/internal/domain/ports"
)

// PollingWatcher watches a markup file by polling its size, mtime and
// checksum
type PollingWatcher struct {
	interval time.Duration
	debounce time.Duration
	logger   *slog.Logger
}

// fileState is the last observed version of the watched file
type fileState struct {
	exists   bool
	size     int64
	modTime  time.Time
	checksum string
}

// NewPollingWatcher creates a polling watcher. Changes closer together than
// debounce are reported once.
func NewPollingWatcher(interval, debounce time.Duration, logger *slog.Logger) *PollingWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}

	return &PollingWatcher{
		interval: interval,
		debounce: debounce,
		logger:   logger.With("component", "watcher"),
	}
}

// Watch polls path until ctx is cancelled
func (w *PollingWatcher) Watch(ctx context.Context, path string) (<-chan ports.FileChange, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	initial, err := scan(absPath)
	if err != nil {
		return nil, fmt.Errorf("initial scan: %w", err)
	}
	if !initial.exists {
		return nil, fmt.Errorf("initial scan: %w", fs.ErrNotExist)
	}

	changes := make(chan ports.FileChange, 1)
	go w.pollLoop(ctx, absPath, initial, changes)

	return changes, nil
}

func (w *PollingWatcher) pollLoop(ctx context.Context, path string, last fileState, changes chan<- ports.FileChange) {
	defer close(changes)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var lastEvent time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		current, err := w.next(path, last)
		if err != nil {
			w.logger.Warn("watch error", slog.String("path", path), slog.String("error", err.Error()))
			continue
		}
		changed := current.exists != last.exists || current.checksum != last.checksum
		last = current
		if !changed {
			continue
		}

		if time.Since(lastEvent) < w.debounce {
			continue
		}

		select {
		case changes <- ports.FileChange{Path: path, Removed: !current.exists, At: time.Now()}:
			lastEvent = time.Now()
		case <-ctx.Done():
			return
		}
	}
}

// next returns the new state, skipping the checksum when size and mtime
// are unchanged
func (w *PollingWatcher) next(path string, last fileState) (fileState, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fileState{}, nil
	}
	if err != nil {
		return last, fmt.Errorf("stat file: %w", err)
	}

	if last.exists && last.size == info.Size() && last.modTime.Equal(info.ModTime()) {
		return last, nil
	}

	checksum, err := checksumFile(path)
	if err != nil {
		return last, fmt.Errorf("checksum: %w", err)
	}

	return fileState{exists: true, size: info.Size(), modTime: info.ModTime(), checksum: checksum}, nil
}

func scan(path string) (fileState, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fileState{}, nil
	}
	if err != nil {
		return fileState{}, err
	}

	checksum, err := checksumFile(path)
	if err != nil {
		return fileState{}, err
	}
	return fileState{exists: true, size: info.Size(), modTime: info.ModTime(), checksum: checksum}, nil
}

func checksumFile(path string) (string, error) {
	file, err := os.Open(path) // #nosec G304 - path is validated by caller
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

var _ ports.FileWatcher = (*PollingWatcher)(nil)

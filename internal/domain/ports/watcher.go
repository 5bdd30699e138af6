package ports

import (
	"context"
	"time"
)

// FileChange reports that a watched file was modified or removed
type FileChange struct {
	Path    string
	Removed bool
	At      time.Time
}

// FileWatcher watches a single file until ctx is cancelled. The returned
// channel is closed when watching stops.
type FileWatcher interface {
	Watch(ctx context.Context, path string) (<-chan FileChange, error)
}

// FileOpener opens a rendered file or URL with the platform's viewer
type FileOpener interface {
	Open(target string) error
}

package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/docdeck/internal/domain/ports"
)

func writeMarkup(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func waitForChange(t *testing.T, changes <-chan ports.FileChange) ports.FileChange {
	t.Helper()
	select {
	case change, ok := <-changes:
		require.True(t, ok, "channel closed before a change arrived")
		return change
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
		return ports.FileChange{}
	}
}

func TestPollingWatcher(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		w := NewPollingWatcher(0, time.Second, nil)
		assert.Equal(t, 500*time.Millisecond, w.interval)
		assert.Equal(t, time.Second, w.debounce)
	})

	t.Run("reports modification", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "deck.md")
		writeMarkup(t, path, "# One\n")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := NewPollingWatcher(20*time.Millisecond, 0, nil).Watch(ctx, path)
		require.NoError(t, err)

		writeMarkup(t, path, "# One\n\n---\n\n## Two\n")

		change := waitForChange(t, changes)
		assert.Equal(t, path, change.Path)
		assert.False(t, change.Removed)
	})

	t.Run("reports removal", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "deck.md")
		writeMarkup(t, path, "# One\n")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := NewPollingWatcher(20*time.Millisecond, 0, nil).Watch(ctx, path)
		require.NoError(t, err)

		require.NoError(t, os.Remove(path))
		assert.True(t, waitForChange(t, changes).Removed)
	})

	t.Run("touch without edits is ignored", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "deck.md")
		writeMarkup(t, path, "# Same\n")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := NewPollingWatcher(20*time.Millisecond, 0, nil).Watch(ctx, path)
		require.NoError(t, err)

		later := time.Now().Add(time.Hour)
		require.NoError(t, os.Chtimes(path, later, later))

		select {
		case change := <-changes:
			t.Fatalf("unexpected change %+v", change)
		case <-time.After(200 * time.Millisecond):
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewPollingWatcher(20*time.Millisecond, 0, nil).Watch(context.Background(), filepath.Join(t.TempDir(), "absent.md"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "initial scan")
	})

	t.Run("closes channel on cancel", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "deck.md")
		writeMarkup(t, path, "# One\n")

		ctx, cancel := context.WithCancel(context.Background())
		changes, err := NewPollingWatcher(20*time.Millisecond, 0, nil).Watch(ctx, path)
		require.NoError(t, err)

		cancel()

		select {
		case _, ok := <-changes:
			assert.False(t, ok)
		case <-time.After(2 * time.Second):
			t.Fatal("channel not closed after cancel")
		}
	})
}

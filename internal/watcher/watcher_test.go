package watcher

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewWatcher(t *testing.T) {
	w, err := New(testLogger(), Options{})
	require.NoError(t, err)
	require.NotNil(t, w)

	err = w.Stop()
	assert.NoError(t, err)
}

func TestWatcher_Watch(t *testing.T) {
	w, err := New(testLogger(), Options{})
	require.NoError(t, err)
	defer w.Stop()

	err = w.Watch(t.TempDir())
	assert.NoError(t, err)
}

func TestWatcher_WatchMissingPath(t *testing.T) {
	w, err := New(testLogger(), Options{})
	require.NoError(t, err)
	defer w.Stop()

	err = w.Watch(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestWatcher_EmitsAfterSettling(t *testing.T) {
	w, err := New(testLogger(), Options{SettleDelay: 50 * time.Millisecond})
	require.NoError(t, err)
	defer w.Stop()

	tmpDir := t.TempDir()
	require.NoError(t, w.Watch(tmpDir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	testFile := filepath.Join(tmpDir, "hr1_ih.csv")
	require.NoError(t, os.WriteFile(testFile, []byte("header,full_text\n"), 0644))

	select {
	case event := <-w.Events():
		assert.Equal(t, EventAdded, event.Type)
		assert.Equal(t, testFile, event.Path)
		assert.NotZero(t, event.Size)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestWatcher_ModifiedAfterAdded(t *testing.T) {
	w, err := New(testLogger(), Options{SettleDelay: 50 * time.Millisecond})
	require.NoError(t, err)
	defer w.Stop()

	tmpDir := t.TempDir()
	require.NoError(t, w.Watch(tmpDir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	testFile := filepath.Join(tmpDir, "hr1_ih.csv")
	require.NoError(t, os.WriteFile(testFile, []byte("first"), 0644))

	select {
	case event := <-w.Events():
		require.Equal(t, EventAdded, event.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for added event")
	}

	require.NoError(t, os.WriteFile(testFile, []byte("second write"), 0644))

	select {
	case event := <-w.Events():
		assert.Equal(t, EventModified, event.Type)
		assert.Equal(t, testFile, event.Path)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for modified event")
	}
}

func TestWatcher_IgnoresTempFiles(t *testing.T) {
	w, err := New(testLogger(), Options{SettleDelay: 50 * time.Millisecond})
	require.NoError(t, err)
	defer w.Stop()

	tmpDir := t.TempDir()
	require.NoError(t, w.Watch(tmpDir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	// Excel owner file and a real dataset; only the dataset should emit.
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "~$hr1_ih.xlsx"), []byte("lock"), 0644))
	realFile := filepath.Join(tmpDir, "hr1_ih.csv")
	require.NoError(t, os.WriteFile(realFile, []byte("header,full_text\n"), 0644))

	select {
	case event := <-w.Events():
		assert.Equal(t, realFile, event.Path)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for event")
	}
}

package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/KaramelBytes/aicontext-cli/internal/watch"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func start(t *testing.T, w *watch.Watcher) (cancel func()) {
	t.Helper()
	ctx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	return func() {
		stop()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not stop after cancel")
		}
	}
}

func TestWatcherCallsBackOnWrite(t *testing.T) {
	root := t.TempDir()
	general := filepath.Join(root, ".ai")
	require.NoError(t, os.MkdirAll(general, 0o755))

	calls := make(chan struct{}, 16)
	w := watch.New([]string{general, filepath.Join(root, ".aicf")},
		func() { calls <- struct{}{} },
		watch.WithDebounce(20*time.Millisecond))
	stop := start(t, w)
	defer stop()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(general, "next-steps.md"), []byte("- [ ] a"), 0o644))

	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("no callback after write")
	}
}

func TestWatcherPicksUpLateDirectory(t *testing.T) {
	root := t.TempDir()
	general := filepath.Join(root, ".ai")
	structured := filepath.Join(root, ".aicf")
	require.NoError(t, os.MkdirAll(general, 0o755))

	var n atomic.Int32
	w := watch.New([]string{general, structured}, func() { n.Add(1) }, watch.WithDebounce(20*time.Millisecond))
	stop := start(t, w)
	defer stop()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.MkdirAll(structured, 0o755))
	require.Eventually(t, func() bool { return n.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)

	before := n.Load()
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(structured, "tasks.aicf"), []byte("@TASKS"), 0o644))
	require.Eventually(t, func() bool { return n.Load() > before }, 5*time.Second, 10*time.Millisecond)
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	root := t.TempDir()
	general := filepath.Join(root, ".ai")
	require.NoError(t, os.MkdirAll(general, 0o755))

	var n atomic.Int32
	w := watch.New([]string{general}, func() { n.Add(1) }, watch.WithDebounce(20*time.Millisecond))
	stop := start(t, w)

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main"), 0o644))
	time.Sleep(200 * time.Millisecond)
	stop()
	assert.Equal(t, int32(0), n.Load())
}

func TestRunWithoutDirectories(t *testing.T) {
	err := watch.New(nil, func() {}).Run(context.Background())
	assert.Error(t, err)
}

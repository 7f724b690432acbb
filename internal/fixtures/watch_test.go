package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaprel/internal/testutil"
)

func TestWatcherMarksDirty(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := NewWatcher(ctx, testutil.NewTestLogger(t), dir, "/does/not/exist")
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	testutil.WriteFile(t, dir, "notes.txt", "ignored")
	time.Sleep(50 * time.Millisecond)
	assert.False(t, w.Dirty(), "unsupported files do not mark the set dirty")

	testutil.WriteFile(t, dir, "R.csv", "k\n1\n")
	assert.Eventually(t, w.Dirty, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherDirtyClears(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := NewWatcher(ctx, nil)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	w.dirty.Store(true)
	assert.True(t, w.Dirty())
	assert.False(t, w.Dirty())
}

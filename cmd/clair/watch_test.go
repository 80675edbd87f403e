package main

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgomes/clairscript/clair"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchCommandRequiresPath(t *testing.T) {
	err := watchCommand(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path required")
}

func TestNewWatchLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	newWatchLogger(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())

	newWatchLogger(&buf, true).Debug("shown", "file", "a.tokens.json")
	assert.Contains(t, buf.String(), "level=DEBUG msg=shown file=a.tokens.json")
}

func TestRunWatchChecksThenRechecksChangedFiles(t *testing.T) {
	dir := t.TempDir()
	bad := writeTokenFile(t, dir, "bad.tokens.json", "", unclosedIfTokens())

	var logs lockedBuffer
	logger := newWatchLogger(&logs, false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runWatch(ctx, logger, []string{dir}, clair.Config{})
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(logs.String(), "msg=checked files=1 failed=1")
	}, 5*time.Second, 20*time.Millisecond, "logs: %s", logs.String())
	assert.Contains(t, logs.String(), "parse failed")

	writeTokenFile(t, dir, "bad.tokens.json", "", declTokens())
	require.Eventually(t, func() bool {
		return strings.Contains(logs.String(), "msg=ok file="+bad)
	}, 5*time.Second, 20*time.Millisecond, "logs: %s", logs.String())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runWatch did not stop after cancel")
	}
}

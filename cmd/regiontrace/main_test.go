package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var stdout, stderr bytes.Buffer
	err := newApp(&stdout, &stderr).Run(append([]string{"regiontrace"}, args...))
	return stdout.String(), err
}

func TestBackendsCommand(t *testing.T) {
	out, err := runApp(t, "backends")
	require.NoError(t, err)
	assert.Equal(t, "btree\ntreap\ntree23\n", out)
}

func TestGenerateThenReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.txt")
	_, err := runApp(t, "generate", "--count", "300", "--seed", "9", "--space", "65536", "--out", path)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(raw)), "\n"), 300)

	for _, name := range []string{"tree23", "treap", "btree"} {
		out, err := runApp(t, "--backend", name, "--cache-size", "32", "replay", "--dump", path)
		require.NoError(t, err, name)
		assert.Contains(t, out, "ops 300\n", name)
		assert.Contains(t, out, "cache hit", name)
	}
}

func TestReplayDumpTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.txt")
	require.NoError(t, os.WriteFile(path, []byte("add 0x10 0x10 exact\nadd 0x40 8 fp\nlookup 0x12\n"), 0o644))

	out, err := runApp(t, "replay", "--dump", path)
	require.NoError(t, err)
	assert.Contains(t, out, "lookup 1 (hit 1)")
	assert.Contains(t, out, "2-3 tree: 2 items, height 1")
	assert.Contains(t, out, "leaf [[0x10,0x20) exact [0x40,0x48) fp]")
}

func TestReplayErrors(t *testing.T) {
	_, err := runApp(t, "replay")
	assert.ErrorContains(t, err, "need to provide path")

	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("add 0x10\n"), 0o644))
	_, err = runApp(t, "replay", path)
	assert.ErrorContains(t, err, "line 1:")

	_, err = runApp(t, "--backend", "avl", "replay", path)
	assert.ErrorContains(t, err, "unknown backend")
}

package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), buf.String())
	return buf.String()
}

func TestRootHelp(t *testing.T) {
	out := run(t, "--help")
	assert.Contains(t, out, "check-achievements")
}

func TestSeedIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fit.db")
	assert.Contains(t, run(t, "--sqlite", path, "migrate"), "Schema is up to date")
	assert.Contains(t, run(t, "--sqlite", path, "seed"), "Catalog seeded")
	assert.Contains(t, run(t, "--sqlite", path, "seed"), "already populated")
}

func TestRecomputeAndCheckOnEmptyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fit.db")
	assert.Contains(t, run(t, "--sqlite", path, "recompute-profiles"), "Recomputed 0 profiles")
	assert.Contains(t, run(t, "--sqlite", path, "check-achievements", "--user", ""), "Checked 0 users")
}

package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ShouldExitOnHelp(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"-h"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:")
}

func TestRun_ShouldExitWithNoCommand(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_UnknownCommand(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"frobnicate"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestRun_InitLoadFlush(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := &bytes.Buffer{}

	require.NoError(t, run(out, []string{"-base-dir", dir, "init", "myworkspace"}))
	assert.FileExists(t, filepath.Join(dir, "salto.config.bp"))

	out.Reset()
	require.NoError(t, run(out, []string{"-base-dir", dir, "load"}))

	out.Reset()
	require.NoError(t, run(out, []string{"-base-dir", dir, "flush"}))
}

func TestRun_InitTwiceReportsExistingWorkspace(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := &bytes.Buffer{}

	require.NoError(t, run(out, []string{"-base-dir", dir, "init"}))
	err := run(out, []string{"-base-dir", dir, "init"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

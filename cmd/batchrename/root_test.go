package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pasdam/batchRegexRenamer/cmd/batchrename/opts"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	color.NoColor = true
	pterm.DisableStyling()
	t.Cleanup(func() {
		color.NoColor = false
		pterm.EnableStyling()
	})

	var buf bytes.Buffer
	o := &opts.RootOpts{Out: &buf, In: &bytes.Buffer{}}

	cmd := newRootCmd(o)
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	err := cmd.ExecuteContext(ctx)
	return buf.String(), err
}

func TestRoot_ConfigScriptIsRelativeToConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rules.brs"), []byte("7,1, ,_,0,0,0,0,0,0\n"), 0o644))
	cfg := filepath.Join(dir, ".batchrename.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("script: rules.brs\n"), 0o644))

	out, err := runRoot(t, "--config", cfg, "rules", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "1 rules ok")
}

func TestRoot_PreviewWithScriptFlag(t *testing.T) {
	script := filepath.Join(t.TempDir(), "rules.brs")
	require.NoError(t, os.WriteFile(script, []byte("4,1,x_,0,0,0\n"), 0o644))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0o644))

	out, err := runRoot(t, "--script", script, "--debug", "preview", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "→ x_a.txt preview")
}

func TestRoot_BadConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("on_failure: sometimes\n"), 0o644))

	_, err := runRoot(t, "--config", cfg, "version")
	assert.ErrorContains(t, err, "loading config")
}

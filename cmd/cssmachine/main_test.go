package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/cssmachine/internal/testutils"
	"github.com/aretw0/cssmachine/pkg/export"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flipperYAML = `name: flipper
tape_length: 8
states:
  - name: A
    zero: {write: 1, move: L, next: HALT}
    one: {write: 0, move: L, next: A}
`

// execute runs the root command with fresh flag values and returns everything it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeMachine(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{"machine.yaml": content})
	return filepath.Join(dir, "machine.yaml")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "cssmachine version 0.1.0\n", out)
}

func TestCompile(t *testing.T) {
	path := writeMachine(t, flipperYAML)

	t.Run("Stdout", func(t *testing.T) {
		out, err := execute(t, "compile", path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
		assert.Contains(t, out, "<title>flipper</title>")
		assert.NotContains(t, out, "<script")
	})

	t.Run("OutputFile", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "flipper.html")
		out, err := execute(t, "compile", path, "-o", target)
		require.NoError(t, err)
		assert.Contains(t, out, "Wrote "+target)

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
	})

	t.Run("Bare", func(t *testing.T) {
		out, err := execute(t, "compile", path, "--bare")
		require.NoError(t, err)
		assert.NotContains(t, out, "<!DOCTYPE html>")
		assert.Contains(t, out, "<style>")
	})

	t.Run("Deterministic", func(t *testing.T) {
		first, err := execute(t, "compile", path)
		require.NoError(t, err)
		second, err := execute(t, "compile", path)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := execute(t, "compile", filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	good := writeMachine(t, flipperYAML)
	bad := writeMachine(t, `states:
  - name: HALT
    zero: {write: 1, move: L}
    one: {write: 0, move: L}
`)
	unreachable := writeMachine(t, flipperYAML+`  - name: B
    zero: {write: 1, move: R, next: HALT}
    one: {write: 1, move: R, next: HALT}
`)

	out, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, good)

	out, err = execute(t, "validate", good, bad)
	require.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, bad)
	assert.Contains(t, err.Error(), "1 of 2")

	out, err = execute(t, "validate", unreachable)
	require.NoError(t, err)
	assert.Contains(t, out, `state "B" is unreachable`)
}

func TestNew(t *testing.T) {
	target := filepath.Join(t.TempDir(), "three.json")
	_, err := execute(t, "new", target, "--name", "three", "--states", "3", "--tape", "5")
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"three"`)

	out, err := execute(t, "table", target, "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "| A | 0 |")
	assert.Contains(t, out, "| C | 1 |")

	_, err = execute(t, "new", "--format", "toml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestGraphAndLink(t *testing.T) {
	path := writeMachine(t, flipperYAML)

	out, err := execute(t, "graph", path)
	require.NoError(t, err)
	assert.Contains(t, out, "graph LR")

	out, err = execute(t, "link", path)
	require.NoError(t, err)
	link := strings.TrimSpace(out)
	require.True(t, strings.HasPrefix(link, export.DataURLPrefix))

	html, err := export.Decode(link)
	require.NoError(t, err)
	assert.Contains(t, html, "<title>flipper</title>")
}

func TestLibrary(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{
		"flipper.md": "---\n" + flipperYAML + "---\n# Flipper\n\nInverts every cell left of the head.\n",
	})

	out, err := execute(t, "library", "--dir", dir, "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "| flipper |")
	assert.Contains(t, out, "Inverts every cell left of the head.")

	out, err = execute(t, "library", "show", "flipper", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "name: flipper")

	out, err = execute(t, "compile", "--id", "flipper", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "<title>flipper</title>")

	_, err = execute(t, "library", "show", "missing", "--dir", dir)
	assert.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	_, err := execute(t, "version", "--log-level", "loud")
	assert.Error(t, err)
}

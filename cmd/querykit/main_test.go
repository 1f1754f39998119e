package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRebind(t *testing.T) {
	out, err := run(t, "rebind", "SELECT * FROM t WHERE a = ? AND b = '?' AND c = ?")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = '?' AND c = $2\n", out)

	out, err = run(t, "rebind", "-d", "mysql", "SELECT ?")
	require.NoError(t, err)
	assert.Equal(t, "SELECT ?\n", out)

	_, err = run(t, "rebind", "-d", "oracle", "SELECT ?")
	assert.Error(t, err)
}

func TestExec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "querykit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("adapter: sqlite\ndsn: ':memory:'\n"), 0o600))

	out, err := run(t, "exec", "-c", path, "SELECT ? AS a, ? AS b", "x", "y")
	require.NoError(t, err)
	assert.Equal(t, "a  b\nx  y\n", out)

	_, err = run(t, "exec", "-c", filepath.Join(t.TempDir(), "none.yaml"), "SELECT 1")
	assert.Error(t, err)
}

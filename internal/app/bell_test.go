package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBell_WritesToTerminal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tty")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	w, closer := openBell(path)
	assert.NotEqual(t, os.Stdout, w)
	_, err := w.Write([]byte("\a"))
	require.NoError(t, err)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\a", string(data))
}

func TestOpenBell_FallsBackToStderr(t *testing.T) {
	w, closer := openBell(filepath.Join(t.TempDir(), "missing", "tty"))
	assert.Equal(t, os.Stderr, w)
	assert.NotEqual(t, os.Stdout, w)
	assert.NoError(t, closer.Close())
}

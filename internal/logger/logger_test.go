package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battop.log")

	closer, err := Setup(path, false)
	require.NoError(t, err)
	require.NotNil(t, closer)
	defer closer.Close()

	l := New("test")
	l.Info().Msg("hello")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"ctx":"test"`)
	assert.Contains(t, string(raw), "hello")
}

func TestSetupNoFile(t *testing.T) {
	closer, err := Setup("", false)
	require.NoError(t, err)
	assert.Nil(t, closer)

	// Must not panic with the nop logger.
	l := New("test")
	l.Info().Msg("discarded")
}

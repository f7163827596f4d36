package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ConsoleOnly(t *testing.T) {
	logger, err := New("debug", "")
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Info("hello")
}

func TestNew_WithFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resilcalc.log")
	logger, err := New("info", path)
	require.NoError(t, err)
	logger.Info("written to rotating file")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to rotating file")
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	logger, err := New("not-a-level", "")
	require.NoError(t, err)
	require.NotNil(t, logger)
}

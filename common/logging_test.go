package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLogger_StderrSink(t *testing.T) {
	log, err := NewLogger(Config{})
	require.NoError(t, err)
	require.NotNil(t, log)
	log.Info("stderr sink smoke test")
}

func TestNewLogger_LumberjackSink(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pool.log")

	log, err := NewLogger(Config{LogPath: path})
	require.NoError(t, err)
	require.NotNil(t, log)

	log.Info("lumberjack sink smoke test")
	require.NoError(t, log.Sync())

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

package logging_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sam-fakhreddine/aws-containers-sub004/internal/logging"
)

func TestNewWritesJSONLinesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bridge.log")

	logger, closeFn, err := logging.New(logging.Config{File: path, Level: "info"})
	require.NoError(t, err)

	logger.Info("request", "action", "getProfiles")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(data, &line))
	assert.Equal(t, "request", line["msg"])
	assert.Equal(t, "getProfiles", line["action"])
	assert.Equal(t, "INFO", line["level"])
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.log")

	logger, closeFn, err := logging.New(logging.Config{File: path, Level: "error"})
	require.NoError(t, err)

	logger.Info("suppressed")
	logger.Error("kept")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "suppressed")
	assert.Contains(t, string(data), "kept")
}

func TestNewAppendsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.log")

	for _, msg := range []string{"first", "second"} {
		logger, closeFn, err := logging.New(logging.Config{File: path, Level: "info"})
		require.NoError(t, err)
		logger.Info(msg)
		require.NoError(t, closeFn())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.Contains(t, string(data), "second")
}

func TestDiscardDropsEverything(t *testing.T) {
	assert.NotPanics(t, func() {
		logging.Discard().Info("noop", "k", "v")
	})
}

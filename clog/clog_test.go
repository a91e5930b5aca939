package clog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	logger, err := New(nil)
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(&Config{Level: "verbose"})
	assert.Error(t, err)
}

func TestNewInvalidFormat(t *testing.T) {
	_, err := New(&Config{Format: "xml"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "warning", "error", "INFO"} {
		_, err := parseLevel(level)
		assert.NoError(t, err, level)
	}
	_, err := parseLevel("fatal2")
	assert.Error(t, err)
}

func TestDiscardIsSafe(t *testing.T) {
	logger := Discard()
	logger.Info("ignored", String("k", "v"))
	logger.Error("ignored", Error(nil))
	assert.Equal(t, logger, logger.With(Int("n", 1)))
	assert.Equal(t, logger, logger.WithNamespace("lock"))
}

func TestWithNamespaceChain(t *testing.T) {
	logger, err := New(&Config{Level: "debug"})
	require.NoError(t, err)

	child := logger.WithNamespace("lock").WithNamespace("redis")
	require.NotNil(t, child)
	child.Debug("namespaced")
}

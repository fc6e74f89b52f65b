package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eslsoft/charm/internal/infrastructure/config"
)

func TestNewLogger_LevelAndJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&config.Config{Log: config.LogConfig{Level: "info", Format: "json"}}, &buf)
	require.NoError(t, err)

	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	logger.Debug("hidden")
	logger.WithField("word", "cat").Info("word learned")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "word learned", entry["msg"])
	assert.Equal(t, "cat", entry["word"])
}

func TestNewLogger_Errors(t *testing.T) {
	_, err := NewLogger(&config.Config{Log: config.LogConfig{Level: "loud"}})
	assert.Error(t, err)

	_, err = NewLogger(&config.Config{Log: config.LogConfig{Level: "warn", Format: "xml"}})
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard().Error("dropped") })
}

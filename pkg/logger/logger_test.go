package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, InfoLevel, level)

	level, err = ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, DebugLevel, level)

	level, err = ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, WarnLevel, level)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}

func TestLoggerFiltersBelowConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{Level: WarnLevel, Output: &buf})

	log.Info("quiet")
	assert.Empty(t, buf.String())

	log.Warn("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestLoggerWritesFieldsAndErrors(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{Level: InfoLevel, Output: &buf})

	log.Info("dataset saved", "path", "data/sessions.csv")
	log.Error(errors.New("disk full"), "save failed")

	out := buf.String()
	assert.Contains(t, out, "dataset saved")
	assert.Contains(t, out, "data/sessions.csv")
	assert.Contains(t, out, "save failed")
	assert.Contains(t, out, "disk full")
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{Level: InfoLevel, Output: &buf})

	log.WithFields(map[string]interface{}{"component": "store"}).Info("ready")
	assert.Contains(t, buf.String(), "component")
	assert.Contains(t, buf.String(), "store")
}

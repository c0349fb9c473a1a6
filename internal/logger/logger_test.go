package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	return entry
}

func TestLogger_InfoWithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	log.WithFields(map[string]any{"source": "template", "style_level": "mid"}).Info("page generated")

	entry := decode(t, buf)
	assert.Equal(t, "page generated", entry["message"])
	assert.Equal(t, "template", entry["source"])
	assert.Equal(t, "mid", entry["style_level"])
	assert.Equal(t, "info", entry["level"])
}

func TestLogger_LevelFilters(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "WARN", Writer: buf})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("hidden")
	assert.Empty(t, strings.TrimSpace(buf.String()))

	log.Warn("shown")
	assert.Equal(t, "warn", decode(t, buf)["level"])
}

func TestLogger_ErrorAttachesCause(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := New(Options{Writer: buf})
	require.NoError(t, err)

	log.With("attempt", 2).Error(errors.New("status 529"), "generation attempt failed")

	entry := decode(t, buf)
	assert.Equal(t, "status 529", entry["error"])
	assert.Equal(t, float64(2), entry["attempt"])
}

func TestLogger_InvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestLogger_NilIsSafe(t *testing.T) {
	var log *Logger
	assert.NotPanics(t, func() {
		log.Info("x")
		log.Warn("x")
		log.Debug("x")
		log.Error(errors.New("x"), "x")
		assert.Nil(t, log.With("k", "v"))
	})
	assert.NotPanics(t, func() { Nop().Info("quiet") })
}

package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "DEBUG", Writer: &buf})
	require.NoError(t, err)

	log.Debug().Str("scope", "app").Msg("inserted")

	assert.Contains(t, buf.String(), `"level":"debug"`)
	assert.Contains(t, buf.String(), `"scope":"app"`)
	assert.Contains(t, buf.String(), `"message":"inserted"`)
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "warn", Writer: &buf})
	require.NoError(t, err)

	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())
}

func TestNew_HumanReadable(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{HumanReadable: true, Writer: &buf})
	require.NoError(t, err)

	log.Info().Msg("compiled")
	assert.Contains(t, buf.String(), "compiled")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

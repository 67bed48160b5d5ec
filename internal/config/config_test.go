package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"styling": {"atomic": {"sourceDir": "styles", "rtl": true}}}`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	atomic := cfg.Styling.Atomic
	assert.Equal(t, "styles", atomic.SourceDir)
	assert.Equal(t, "public/styles", atomic.OutputDir)
	assert.Equal(t, "vango-atomic", atomic.StyleID)
	assert.Equal(t, "", atomic.CacheDir)
	assert.True(t, atomic.RTL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"styling":`)

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoad_ValidationError(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"log": {"level": "loud"}}`)

	_, err := Load(dir)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "log.level", ve.Field)
	assert.Contains(t, ve.Error(), "oneof")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Styling.Atomic.RTL = true
	cfg.Log.Human = true

	require.NoError(t, Save(cfg, dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate_MissingSection(t *testing.T) {
	cfg := &Config{Log: &LogConfig{Level: "info"}}

	err := cfg.Validate()
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "styling", ve.Field)
}

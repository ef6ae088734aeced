package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// Provide a path that definitely doesn't exist
	config, err := LoadConfig("non_existent_config.yml")
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.0-flash", config.ModelSettings.ChatModel)
	assert.Equal(t, "gemini-2.0-flash-preview-image-generation", config.ModelSettings.ImageModel)
	assert.Equal(t, 1.0, config.ModelSettings.Temperature)
	assert.Equal(t, 60, config.Limits.RequestTimeoutSeconds)
	assert.Equal(t, 200, config.Limits.SummaryMaxMessages)
	assert.Equal(t, 2000, config.Limits.ReplyMaxChars)
}

func TestLoadConfig_ValidFile(t *testing.T) {
	content := []byte(`
model_settings:
  chat_model: gemini-2.5-pro
  temperature: 0.7
limits:
  request_timeout_seconds: 30
  summary_max_messages: 50
`)
	tmpfile, err := os.CreateTemp("", "config_test_*.yml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name()) // clean up

	if _, err := tmpfile.Write(content); err != nil {
		tmpfile.Close()
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(tmpfile.Name())
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-pro", config.ModelSettings.ChatModel)
	assert.Equal(t, 0.7, config.ModelSettings.Temperature)
	assert.Equal(t, 30, config.Limits.RequestTimeoutSeconds)
	assert.Equal(t, 50, config.Limits.SummaryMaxMessages)

	// Fields absent from the file keep their defaults.
	assert.Equal(t, "gemini-2.0-flash-preview-image-generation", config.ModelSettings.ImageModel)
	assert.Equal(t, 2000, config.Limits.ReplyMaxChars)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	content := []byte(`
model_settings:
  temperature: "not a number"
  broken_yaml: [ unclosed bracket
`)
	tmpfile, err := os.CreateTemp("", "config_invalid_*.yml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write(content); err != nil {
		tmpfile.Close()
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(tmpfile.Name())
	assert.Error(t, err)
	assert.Nil(t, config)
}

package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ModelSettings struct {
		ChatModel   string  `yaml:"chat_model"`
		ImageModel  string  `yaml:"image_model"`
		Temperature float64 `yaml:"temperature"`
	} `yaml:"model_settings"`
	Limits struct {
		RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
		SummaryMaxMessages    int `yaml:"summary_max_messages"`
		ReplyMaxChars         int `yaml:"reply_max_chars"`
	} `yaml:"limits"`
}

func defaults() *Config {
	config := &Config{}
	config.ModelSettings.ChatModel = "gemini-2.0-flash"
	config.ModelSettings.ImageModel = "gemini-2.0-flash-preview-image-generation"
	config.ModelSettings.Temperature = 1
	config.Limits.RequestTimeoutSeconds = 60
	config.Limits.SummaryMaxMessages = 200
	config.Limits.ReplyMaxChars = 2000
	return config
}

func LoadConfig(path string) (*Config, error) {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return defaults(), nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := defaults()
	if err := yaml.Unmarshal(file, config); err != nil {
		return nil, err
	}

	return config, nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultUpstreamTimeout = 60 * time.Second

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	Transcriber TranscriberConfig `yaml:"transcriber"`
	Emotion     ChatStageConfig   `yaml:"emotion"`
	Prompt      ChatStageConfig   `yaml:"prompt"`
	Mistral     ChatStageConfig   `yaml:"mistral"`
	Image       ImageConfig       `yaml:"image"`
	Secrets     SecretsConfig     `yaml:"secrets"`
	Pipeline    PipelineConfig    `yaml:"pipeline"`
	Mock        MockConfig        `yaml:"mock"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		Server:      defaultServerConfig(),
		Logging:     LoggingConfig{Level: "info"},
		Transcriber: defaultTranscriberConfig(),
		Emotion:     defaultEmotionConfig(),
		Prompt:      defaultPromptConfig(),
		Mistral:     defaultMistralConfig(),
		Image:       defaultImageConfig(),
		Secrets:     defaultSecretsConfig(),
		Pipeline:    defaultPipelineConfig(),
	}
}

// Load applies, in order, the defaults, the YAML file at path (skipped when path is empty)
// and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	envString("LOG_LEVEL", &c.Logging.Level)
	envString("DREAM_MOCK_FIXTURE", &c.Mock.FixturePath)

	return errors.Join(
		c.Server.applyEnv(),
		c.Transcriber.applyEnv(),
		c.Emotion.applyEnv("GROQ"),
		c.Prompt.applyEnv("GROQ"),
		c.Mistral.applyEnv("MISTRAL"),
		c.Image.applyEnv(),
		c.Secrets.applyEnv(),
		c.Pipeline.applyEnv(),
	)
}

func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Transcriber.validate(),
		c.Emotion.validate("emotion"),
		c.Prompt.validate("prompt"),
		c.Mistral.validate("mistral"),
		c.Image.validate(),
		c.Secrets.validate(),
		c.Pipeline.validate(),
	)
}

func envString(key string, target *string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

func envDuration(key string, target *time.Duration) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", key, err)
	}
	*target = d
	return nil
}

func envInt(key string, target *int) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", key, err)
	}
	*target = i
	return nil
}

func envBool(key string, target *bool) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", key, err)
	}
	*target = b
	return nil
}

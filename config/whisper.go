package config

import (
	"fmt"
	"time"
)

type TranscriberConfig struct {
	ApiUrl         string        `yaml:"api_url"`
	Model          string        `yaml:"model"`
	CredentialName string        `yaml:"credential_name"`
	Timeout        time.Duration `yaml:"timeout"`
}

func defaultTranscriberConfig() TranscriberConfig {
	return TranscriberConfig{
		ApiUrl:         "https://api.openai.com/v1/audio/transcriptions",
		Model:          "whisper-1",
		CredentialName: "OPENAI_API_KEY",
		Timeout:        DefaultUpstreamTimeout,
	}
}

func (t *TranscriberConfig) applyEnv() error {
	envString("WHISPER_API_URL", &t.ApiUrl)
	envString("WHISPER_MODEL", &t.Model)
	return envDuration("WHISPER_TIMEOUT", &t.Timeout)
}

func (t *TranscriberConfig) validate() error {
	if t.ApiUrl == "" {
		return fmt.Errorf("WHISPER_API_URL must be set")
	}
	if t.Model == "" {
		return fmt.Errorf("WHISPER_MODEL must be set")
	}
	if t.CredentialName == "" {
		return fmt.Errorf("transcriber.credential_name must be set")
	}
	if t.Timeout <= 0 {
		return fmt.Errorf("WHISPER_TIMEOUT must be positive")
	}
	return nil
}

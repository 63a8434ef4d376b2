package config

import (
	"fmt"
	"time"
)

type ImageConfig struct {
	ApiUrl         string        `yaml:"api_url"`
	CredentialName string        `yaml:"credential_name"`
	Timeout        time.Duration `yaml:"timeout"`
}

func defaultImageConfig() ImageConfig {
	return ImageConfig{
		ApiUrl:         "https://clipdrop-api.co/text-to-image/v1",
		CredentialName: "CLIPDROP_API_KEY",
		Timeout:        DefaultUpstreamTimeout,
	}
}

func (i *ImageConfig) applyEnv() error {
	envString("CLIPDROP_API_URL", &i.ApiUrl)
	return envDuration("CLIPDROP_TIMEOUT", &i.Timeout)
}

func (i *ImageConfig) validate() error {
	if i.ApiUrl == "" {
		return fmt.Errorf("CLIPDROP_API_URL must be set")
	}
	if i.CredentialName == "" {
		return fmt.Errorf("image.credential_name must be set")
	}
	if i.Timeout <= 0 {
		return fmt.Errorf("CLIPDROP_TIMEOUT must be positive")
	}
	return nil
}

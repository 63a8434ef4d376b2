package config

import (
	"fmt"
	"time"
)

const (
	groqChatURL    = "https://api.groq.com/openai/v1/chat/completions"
	groqModel      = "mixtral-8x7b-32768"
	mistralChatURL = "https://api.mistral.ai/v1/chat/completions"
	mistralModel   = "mistral-tiny"
)

// ChatStageConfig describes one chat-completion backed stage.
type ChatStageConfig struct {
	ApiUrl         string        `yaml:"api_url"`
	Model          string        `yaml:"model"`
	CredentialName string        `yaml:"credential_name"`
	Temperature    float64       `yaml:"temperature"`
	MaxTokens      int           `yaml:"max_tokens"`
	Timeout        time.Duration `yaml:"timeout"`
}

func defaultEmotionConfig() ChatStageConfig {
	return ChatStageConfig{
		ApiUrl:         groqChatURL,
		Model:          groqModel,
		CredentialName: "GROQ_API_KEY",
		Temperature:    0,
		MaxTokens:      10,
		Timeout:        DefaultUpstreamTimeout,
	}
}

func defaultPromptConfig() ChatStageConfig {
	return ChatStageConfig{
		ApiUrl:         groqChatURL,
		Model:          groqModel,
		CredentialName: "GROQ_API_KEY",
		Temperature:    0.7,
		MaxTokens:      60,
		Timeout:        DefaultUpstreamTimeout,
	}
}

func defaultMistralConfig() ChatStageConfig {
	return ChatStageConfig{
		ApiUrl:         mistralChatURL,
		Model:          mistralModel,
		CredentialName: "MISTRAL_API_KEY",
		Temperature:    0.7,
		MaxTokens:      60,
		Timeout:        DefaultUpstreamTimeout,
	}
}

// applyEnv reads <PREFIX>_API_URL, <PREFIX>_MODEL and <PREFIX>_TIMEOUT.
func (c *ChatStageConfig) applyEnv(prefix string) error {
	envString(prefix+"_API_URL", &c.ApiUrl)
	envString(prefix+"_MODEL", &c.Model)
	return envDuration(prefix+"_TIMEOUT", &c.Timeout)
}

func (c *ChatStageConfig) validate(section string) error {
	if c.ApiUrl == "" {
		return fmt.Errorf("%s.api_url must be set", section)
	}
	if c.Model == "" {
		return fmt.Errorf("%s.model must be set", section)
	}
	if c.CredentialName == "" {
		return fmt.Errorf("%s.credential_name must be set", section)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%s.temperature must be within [0, 2]", section)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("%s.max_tokens must be positive", section)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%s.timeout must be positive", section)
	}
	return nil
}

package config

import "fmt"

const (
	PromptSourceGroq    = "groq"
	PromptSourceMistral = "mistral"
)

type PipelineConfig struct {
	ParallelAnalysis bool   `yaml:"parallel_analysis"`
	PromptSource     string `yaml:"prompt_source"`
}

func defaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		PromptSource: PromptSourceGroq,
	}
}

func (p *PipelineConfig) applyEnv() error {
	envString("PIPELINE_PROMPT_SOURCE", &p.PromptSource)
	return envBool("PIPELINE_PARALLEL_ANALYSIS", &p.ParallelAnalysis)
}

func (p *PipelineConfig) validate() error {
	if p.PromptSource != PromptSourceGroq && p.PromptSource != PromptSourceMistral {
		return fmt.Errorf("PIPELINE_PROMPT_SOURCE must be groq or mistral; got %q", p.PromptSource)
	}
	return nil
}

// MockConfig replaces the upstream stages with fixtures when FixturePath is set.
type MockConfig struct {
	FixturePath string `yaml:"fixture_path"`
}

func (m MockConfig) Enabled() bool {
	return m.FixturePath != ""
}

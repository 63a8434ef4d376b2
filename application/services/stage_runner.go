package services

import (
	"context"
	"fmt"
	"io"

	"github.com/Bigmatrix2/Dreammaker/application/ports/inbound"
	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
	"github.com/Bigmatrix2/Dreammaker/domain"
)

type stageRunner struct {
	logger           outbound.LoggerPort
	staging          outbound.AudioStagingPort
	transcriber      outbound.TranscriberPort
	classifier       outbound.EmotionClassifierPort
	promptGenerators map[inbound.PromptSource]outbound.PromptGeneratorPort
	imageSynthesizer outbound.ImageSynthesizerPort
	metrics          outbound.MetricsPort
}

func NewStageRunner(logger outbound.LoggerPort, staging outbound.AudioStagingPort, transcriber outbound.TranscriberPort,
	classifier outbound.EmotionClassifierPort, promptGenerators map[inbound.PromptSource]outbound.PromptGeneratorPort,
	imageSynthesizer outbound.ImageSynthesizerPort, metrics outbound.MetricsPort) inbound.StageRunnerPort {
	return &stageRunner{
		logger:           logger,
		staging:          staging,
		transcriber:      transcriber,
		classifier:       classifier,
		promptGenerators: promptGenerators,
		imageSynthesizer: imageSynthesizer,
		metrics:          metrics,
	}
}

func (s *stageRunner) Transcribe(ctx context.Context, filename string, audio io.Reader) (domain.Transcript, error) {
	staged, err := s.staging.Stage(ctx, filename, audio)
	if err != nil {
		return "", err
	}
	defer staged.Release()

	return observeStage(s.metrics, domain.StageTranscription, func() (domain.Transcript, error) {
		return s.transcriber.Transcribe(ctx, staged.Clip)
	})
}

func (s *stageRunner) ClassifyEmotion(ctx context.Context, text string) (domain.EmotionLabel, error) {
	return observeStage(s.metrics, domain.StageEmotion, func() (domain.EmotionLabel, error) {
		return s.classifier.Classify(ctx, domain.Transcript(text))
	})
}

func (s *stageRunner) GenerateImagePrompt(ctx context.Context, text string, source inbound.PromptSource) (domain.ImagePrompt, error) {
	generator, ok := s.promptGenerators[source]
	if !ok {
		return "", fmt.Errorf("unknown prompt source %q", source)
	}
	return observeStage(s.metrics, domain.StagePrompt, func() (domain.ImagePrompt, error) {
		return generator.Generate(ctx, domain.Transcript(text))
	})
}

func (s *stageRunner) GenerateImage(ctx context.Context, prompt string) (domain.GeneratedImage, error) {
	image, err := observeStage(s.metrics, domain.StageImage, func() (domain.GeneratedImage, error) {
		return s.imageSynthesizer.Synthesize(ctx, domain.ImagePrompt(prompt))
	})
	if err != nil {
		return domain.GeneratedImage{}, err
	}
	if image.Empty() {
		s.logger.Warn("Image synthesizer returned no bytes")
	}
	return image, nil
}

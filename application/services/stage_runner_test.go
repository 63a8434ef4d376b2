package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/Bigmatrix2/Dreammaker/application/ports/inbound"
	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
	"github.com/Bigmatrix2/Dreammaker/domain"
	"github.com/Bigmatrix2/Dreammaker/infrastructure/adapters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStageRunner(f *pipelineFixture, mistral outbound.PromptGeneratorPort) inbound.StageRunnerPort {
	logger := adapters.NewZerologWrapper(io.Discard, "debug")
	return NewStageRunner(logger, adapters.NewTempAudioStaging(f.stagingDir, logger), f.transcriber, f.classifier,
		map[inbound.PromptSource]outbound.PromptGeneratorPort{
			inbound.PromptSourceGroq:    f.generator,
			inbound.PromptSourceMistral: mistral,
		}, f.synthesizer, f.metrics)
}

func TestStageRunner_Transcribe(t *testing.T) {
	f := newPipelineFixture(t)
	runner := newTestStageRunner(f, &fakePromptGenerator{})

	transcript, err := runner.Transcribe(context.Background(), "dream.wav", strings.NewReader("riff"))

	require.NoError(t, err)
	assert.Equal(t, domain.Transcript(dreamText), transcript)
	assert.Equal(t, "riff", f.transcriber.received.Load())
	f.assertStagingReleased(t)
}

func TestStageRunner_PromptSources(t *testing.T) {
	f := newPipelineFixture(t)
	mistral := &fakePromptGenerator{prompt: "Un ciel pourpre"}
	runner := newTestStageRunner(f, mistral)

	prompt, err := runner.GenerateImagePrompt(context.Background(), dreamText, inbound.PromptSourceMistral)
	require.NoError(t, err)
	assert.Equal(t, domain.ImagePrompt("Un ciel pourpre"), prompt)
	assert.Zero(t, f.generator.calls.Load())

	prompt, err = runner.GenerateImagePrompt(context.Background(), dreamText, inbound.PromptSourceGroq)
	require.NoError(t, err)
	assert.Equal(t, domain.ImagePrompt("Une ville embrasée vue du ciel"), prompt)

	_, err = runner.GenerateImagePrompt(context.Background(), dreamText, "openai")
	assert.Error(t, err)
}

func TestStageRunner_ClassifyAndImage(t *testing.T) {
	f := newPipelineFixture(t)
	runner := newTestStageRunner(f, &fakePromptGenerator{})

	label, err := runner.ClassifyEmotion(context.Background(), dreamText)
	require.NoError(t, err)
	assert.Equal(t, domain.EmotionNightmare, label)

	image, err := runner.GenerateImage(context.Background(), "Une ville embrasée")
	require.NoError(t, err)
	assert.Equal(t, pngBytes, image.Data)
	assert.Equal(t, "ok", f.metrics.stages[domain.StageImage])
}

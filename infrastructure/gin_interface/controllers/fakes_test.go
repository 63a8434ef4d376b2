package controllers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"sync/atomic"
	"testing"

	"github.com/Bigmatrix2/Dreammaker/application/ports/inbound"
	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
	"github.com/Bigmatrix2/Dreammaker/domain"
	"github.com/Bigmatrix2/Dreammaker/infrastructure/adapters"
	"github.com/stretchr/testify/require"
)

const testMaxUpload = 1 << 20

func testLogger() outbound.LoggerPort {
	return adapters.NewZerologWrapper(io.Discard, "debug")
}

type fakeStageRunner struct {
	transcript domain.Transcript
	emotion    domain.EmotionLabel
	prompt     domain.ImagePrompt
	image      domain.GeneratedImage
	err        error
	lastText   string
	lastSource inbound.PromptSource
}

func (f *fakeStageRunner) Transcribe(_ context.Context, _ string, audio io.Reader) (domain.Transcript, error) {
	if _, err := io.Copy(io.Discard, audio); err != nil {
		return "", err
	}
	return f.transcript, f.err
}

func (f *fakeStageRunner) ClassifyEmotion(_ context.Context, text string) (domain.EmotionLabel, error) {
	f.lastText = text
	return f.emotion, f.err
}

func (f *fakeStageRunner) GenerateImagePrompt(_ context.Context, text string, source inbound.PromptSource) (domain.ImagePrompt, error) {
	f.lastText = text
	f.lastSource = source
	return f.prompt, f.err
}

func (f *fakeStageRunner) GenerateImage(_ context.Context, prompt string) (domain.GeneratedImage, error) {
	f.lastText = prompt
	return f.image, f.err
}

type fakePipeline struct {
	result   *domain.PipelineResult
	events   []domain.StageEvent
	err      error
	received atomic.Value
}

func (f *fakePipeline) Run(_ context.Context, params inbound.RunPipelineParams) (*domain.PipelineResult, error) {
	content, err := io.ReadAll(params.Audio)
	if err != nil {
		return nil, err
	}
	f.received.Store(string(content))
	return f.result, f.err
}

func (f *fakePipeline) Stream(_ context.Context, params inbound.RunPipelineParams) (<-chan domain.StageEvent, <-chan error) {
	out := make(chan domain.StageEvent, len(f.events))
	errCh := make(chan error, 1)

	content, err := io.ReadAll(params.Audio)
	if err != nil {
		errCh <- err
	}
	f.received.Store(string(content))

	for _, event := range f.events {
		out <- event
	}
	close(out)
	if f.err != nil {
		errCh <- f.err
	}
	close(errCh)
	return out, errCh
}

func completeResult() *domain.PipelineResult {
	emotion := domain.EmotionNightmare
	prompt := domain.ImagePrompt("Une ville embrasée")
	image := domain.GeneratedImage{Data: []byte("png")}.DataURI()
	return &domain.PipelineResult{
		Transcription: "Je volais au-dessus d'une ville en feu",
		Emotion:       &emotion,
		Prompt:        &prompt,
		Image:         &image,
	}
}

func completeEvents() []domain.StageEvent {
	result := completeResult()
	return []domain.StageEvent{
		{RunID: "run-1", Stage: domain.StageTranscription, State: domain.StateTranscriptReady, Output: string(result.Transcription)},
		{RunID: "run-1", Stage: domain.StageEmotion, State: domain.StateEmotionReady, Output: string(*result.Emotion)},
		{RunID: "run-1", Stage: domain.StagePrompt, State: domain.StatePromptReady, Output: string(*result.Prompt)},
		{RunID: "run-1", Stage: domain.StageImage, State: domain.StateComplete, Output: *result.Image},
		{RunID: "run-1", State: domain.StateDone, Result: result},
	}
}

func multipartAudio(t *testing.T, filename string, content string) (*bytes.Buffer, string) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

package mock_generator

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Bigmatrix2/Dreammaker/domain"
	"github.com/Bigmatrix2/Dreammaker/infrastructure/adapters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_BundledFixture(t *testing.T) {
	logger := adapters.NewZerologWrapper(io.Discard, "debug")
	fixture, err := NewFileFixtureReader(logger).Read("dream.json")
	require.NoError(t, err)
	for _, stage := range []*StageFixture{&fixture.Transcription, &fixture.Emotion, &fixture.Prompt, &fixture.Image} {
		stage.DelayMs = 0
	}

	stages, err := Init(staticReader{fixture: fixture}, "dream.json", logger)
	require.NoError(t, err)

	ctx := context.Background()

	transcript, err := stages.Transcriber.Transcribe(ctx, domain.NewAudioClip("dream.mp3", strings.NewReader("audio")))
	require.NoError(t, err)
	assert.Equal(t, domain.Transcript("Je volais au-dessus d'une ville en feu"), transcript)

	label, err := stages.Classifier.Classify(ctx, transcript)
	require.NoError(t, err)
	assert.Equal(t, domain.EmotionNightmare, label)

	prompt, err := stages.PromptGenerator.Generate(ctx, transcript)
	require.NoError(t, err)
	assert.False(t, prompt.Empty())

	image, err := stages.ImageSynthesizer.Synthesize(ctx, prompt)
	require.NoError(t, err)
	assert.False(t, image.Empty())
	assert.Equal(t, domain.MediaTypePNG, image.MimeType)
}

func TestInit_FixtureFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failing.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"transcription": {"output": "un rêve"},
		"emotion": {"error": {"status": 429, "body": "slow down"}}
	}`), 0o600))

	logger := adapters.NewZerologWrapper(io.Discard, "debug")
	stages, err := Init(NewFileFixtureReader(logger), path, logger)
	require.NoError(t, err)

	_, err = stages.Classifier.Classify(context.Background(), "un rêve")

	var upstreamErr *domain.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, 429, upstreamErr.Status)
	assert.Equal(t, "slow down", upstreamErr.Body)
	assert.Equal(t, domain.StageEmotion, upstreamErr.Stage)
}

func TestInit_InvalidImage(t *testing.T) {
	logger := adapters.NewZerologWrapper(io.Discard, "debug")
	fixture := &Fixture{Image: StageFixture{Output: "not-a-data-uri"}}

	_, err := Init(staticReader{fixture: fixture}, "inline", logger)

	assert.Error(t, err)
}

func TestFixtureStage_DelayHonoursCancellation(t *testing.T) {
	stage := &fixturePromptGenerator{fixtureStage{
		logger:  adapters.NewZerologWrapper(io.Discard, "debug"),
		stage:   domain.StagePrompt,
		fixture: StageFixture{Output: "late", DelayMs: 60_000},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := stage.Generate(ctx, "un rêve")

	assert.ErrorIs(t, err, context.Canceled)
}

type staticReader struct {
	fixture *Fixture
}

func (s staticReader) Read(string) (*Fixture, error) {
	return s.fixture, nil
}

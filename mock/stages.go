package mock_generator

import (
	"context"
	"io"
	"time"

	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
	"github.com/Bigmatrix2/Dreammaker/domain"
)

type fixtureStage struct {
	logger  outbound.LoggerPort
	stage   domain.StageName
	fixture StageFixture
}

// replay waits for the configured delay and then yields the canned output or failure.
func (f *fixtureStage) replay(ctx context.Context) (string, error) {
	if f.fixture.DelayMs > 0 {
		timer := time.NewTimer(time.Duration(f.fixture.DelayMs) * time.Millisecond)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	if f.fixture.Error != nil {
		f.logger.DebugWithFields("Replaying fixture failure", map[string]interface{}{
			"stage":  f.stage,
			"status": f.fixture.Error.Status,
		})
		return "", &domain.UpstreamError{
			Stage:  f.stage,
			Status: f.fixture.Error.Status,
			Body:   f.fixture.Error.Body,
		}
	}

	return f.fixture.Output, nil
}

type fixtureTranscriber struct{ fixtureStage }

func (f *fixtureTranscriber) Transcribe(ctx context.Context, clip domain.AudioClip) (domain.Transcript, error) {
	// the clip is consumed like a real upload would be
	if _, err := io.Copy(io.Discard, clip.Content); err != nil {
		return "", err
	}
	out, err := f.replay(ctx)
	return domain.Transcript(out), err
}

type fixtureClassifier struct{ fixtureStage }

func (f *fixtureClassifier) Classify(ctx context.Context, _ domain.Transcript) (domain.EmotionLabel, error) {
	out, err := f.replay(ctx)
	if err != nil {
		return "", err
	}
	return domain.NormalizeEmotion(out), nil
}

type fixturePromptGenerator struct{ fixtureStage }

func (f *fixturePromptGenerator) Generate(ctx context.Context, _ domain.Transcript) (domain.ImagePrompt, error) {
	out, err := f.replay(ctx)
	return domain.ImagePrompt(out), err
}

type fixtureImageSynthesizer struct {
	fixtureStage
	image domain.GeneratedImage
}

func (f *fixtureImageSynthesizer) Synthesize(ctx context.Context, _ domain.ImagePrompt) (domain.GeneratedImage, error) {
	if _, err := f.replay(ctx); err != nil {
		return domain.GeneratedImage{}, err
	}
	return f.image, nil
}

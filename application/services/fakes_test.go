package services

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Bigmatrix2/Dreammaker/domain"
)

type fakeTranscriber struct {
	transcript domain.Transcript
	err        error
	calls      atomic.Int32
	received   atomic.Value
}

func (f *fakeTranscriber) Transcribe(_ context.Context, clip domain.AudioClip) (domain.Transcript, error) {
	f.calls.Add(1)
	content, err := io.ReadAll(clip.Content)
	if err != nil {
		return "", err
	}
	f.received.Store(string(content))
	return f.transcript, f.err
}

type fakeClassifier struct {
	label domain.EmotionLabel
	err   error
	delay time.Duration
	calls atomic.Int32
}

func (f *fakeClassifier) Classify(ctx context.Context, _ domain.Transcript) (domain.EmotionLabel, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.label, f.err
}

type fakePromptGenerator struct {
	prompt domain.ImagePrompt
	err    error
	gate   chan struct{}
	calls  atomic.Int32
}

func (f *fakePromptGenerator) Generate(ctx context.Context, _ domain.Transcript) (domain.ImagePrompt, error) {
	f.calls.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.prompt, f.err
}

type fakeImageSynthesizer struct {
	image domain.GeneratedImage
	err   error
	calls atomic.Int32
}

func (f *fakeImageSynthesizer) Synthesize(_ context.Context, _ domain.ImagePrompt) (domain.GeneratedImage, error) {
	f.calls.Add(1)
	return f.image, f.err
}

type recordingMetrics struct {
	mu        sync.Mutex
	stages    map[domain.StageName]string
	pipelines []domain.PipelineState
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{stages: make(map[domain.StageName]string)}
}

func (r *recordingMetrics) ObserveStage(stage domain.StageName, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages[stage] = outcome
}

func (r *recordingMetrics) ObservePipeline(outcome domain.PipelineState, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pipelines = append(r.pipelines, outcome)
}

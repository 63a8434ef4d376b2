package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Bigmatrix2/Dreammaker/application/ports/inbound"
	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
	"github.com/Bigmatrix2/Dreammaker/domain"
	"github.com/google/uuid"
)

const (
	stageOutcomeOK    = "ok"
	stageOutcomeError = "error"
)

type dreamPipeline struct {
	logger           outbound.LoggerPort
	workerPool       outbound.TaskDispatcher
	staging          outbound.AudioStagingPort
	transcriber      outbound.TranscriberPort
	classifier       outbound.EmotionClassifierPort
	promptGenerator  outbound.PromptGeneratorPort
	imageSynthesizer outbound.ImageSynthesizerPort
	metrics          outbound.MetricsPort
	parallelAnalysis bool
}

type DreamPipelineStages struct {
	Transcriber      outbound.TranscriberPort
	Classifier       outbound.EmotionClassifierPort
	PromptGenerator  outbound.PromptGeneratorPort
	ImageSynthesizer outbound.ImageSynthesizerPort
}

// NewDreamPipeline chains the four stages. With parallelAnalysis the emotion stage runs on
// workerPool while the prompt stage runs on the calling goroutine; the result is the same either way.
func NewDreamPipeline(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher, staging outbound.AudioStagingPort,
	stages DreamPipelineStages, metrics outbound.MetricsPort, parallelAnalysis bool) inbound.DreamPipelinePort {
	return &dreamPipeline{
		logger:           logger,
		workerPool:       workerPool,
		staging:          staging,
		transcriber:      stages.Transcriber,
		classifier:       stages.Classifier,
		promptGenerator:  stages.PromptGenerator,
		imageSynthesizer: stages.ImageSynthesizer,
		metrics:          metrics,
		parallelAnalysis: parallelAnalysis,
	}
}

func (d *dreamPipeline) Run(ctx context.Context, params inbound.RunPipelineParams) (*domain.PipelineResult, error) {
	return d.run(ctx, params, func(domain.StageEvent) {})
}

// Stream reports every stage outcome as it happens. The events channel is closed when the
// run ends; a failure is then available on the error channel.
// The run owns its goroutine and never holds a pool slot, so stage tasks it submits can always be scheduled.
func (d *dreamPipeline) Stream(ctx context.Context, params inbound.RunPipelineParams) (<-chan domain.StageEvent, <-chan error) {
	out := make(chan domain.StageEvent)
	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		defer close(out)
		defer func() {
			if p := recover(); p != nil {
				err := fmt.Errorf("pipeline panic: %v", p)
				d.logger.Error(err, "Panic in streamed pipeline run")
				errCh <- err
			}
		}()

		_, err := d.run(ctx, params, func(event domain.StageEvent) {
			select {
			case out <- event:
			case <-ctx.Done():
			}
		})
		if err != nil {
			errCh <- err
		}
	}()

	return out, errCh
}

func (d *dreamPipeline) run(ctx context.Context, params inbound.RunPipelineParams,
	emit func(domain.StageEvent)) (*domain.PipelineResult, error) {
	runID := uuid.NewString()
	logger := d.logger.With(map[string]interface{}{"run_id": runID})
	start := time.Now()

	fail := func(stage domain.StageName, err error) (*domain.PipelineResult, error) {
		logger.ErrorWithFields(err, "Pipeline failed", map[string]interface{}{"stage": stage})
		d.metrics.ObservePipeline(domain.StateFailed, time.Since(start))
		return nil, err
	}
	finish := func(state domain.PipelineState, result *domain.PipelineResult) (*domain.PipelineResult, error) {
		emit(domain.StageEvent{RunID: runID, State: domain.StateDone, Result: result})
		logger.InfoWithFields("Pipeline finished", map[string]interface{}{
			"outcome": state,
			"elapsed": time.Since(start).String(),
		})
		d.metrics.ObservePipeline(state, time.Since(start))
		return result, nil
	}

	staged, err := d.staging.Stage(ctx, params.Filename, params.Audio)
	if err != nil {
		return fail(domain.StageTranscription, err)
	}
	defer staged.Release()

	transcript, err := observeStage(d.metrics, domain.StageTranscription, func() (domain.Transcript, error) {
		return d.transcriber.Transcribe(ctx, staged.Clip)
	})
	if err != nil {
		return fail(domain.StageTranscription, err)
	}

	result := &domain.PipelineResult{Transcription: transcript}

	if transcript.Empty() {
		emit(domain.StageEvent{RunID: runID, Stage: domain.StageTranscription, State: domain.StateEmptyTranscript})
		return finish(domain.StateEmptyTranscript, result)
	}
	emit(domain.StageEvent{RunID: runID, Stage: domain.StageTranscription, State: domain.StateTranscriptReady,
		Output: string(transcript)})

	var (
		emotion domain.EmotionLabel
		prompt  domain.ImagePrompt
		stage   domain.StageName
	)
	emitEmotion := func(label domain.EmotionLabel) {
		emit(domain.StageEvent{RunID: runID, Stage: domain.StageEmotion, State: domain.StateEmotionReady,
			Output: string(label)})
	}
	if d.parallelAnalysis {
		emotion, prompt, stage, err = d.analyzeConcurrently(ctx, transcript)
		if err == nil {
			emitEmotion(emotion)
		}
	} else {
		emotion, prompt, stage, err = d.analyzeSequentially(ctx, transcript, emitEmotion)
	}
	if err != nil {
		return fail(stage, err)
	}

	result.Emotion = &emotion

	if prompt.Empty() {
		emit(domain.StageEvent{RunID: runID, Stage: domain.StagePrompt, State: domain.StateEmptyPrompt})
		return finish(domain.StateEmptyPrompt, result)
	}
	result.Prompt = &prompt
	emit(domain.StageEvent{RunID: runID, Stage: domain.StagePrompt, State: domain.StatePromptReady,
		Output: string(prompt)})

	image, err := observeStage(d.metrics, domain.StageImage, func() (domain.GeneratedImage, error) {
		return d.imageSynthesizer.Synthesize(ctx, prompt)
	})
	if err != nil {
		return fail(domain.StageImage, err)
	}

	if image.Empty() {
		emit(domain.StageEvent{RunID: runID, Stage: domain.StageImage, State: domain.StateEmptyImage})
		return finish(domain.StateEmptyImage, result)
	}
	uri := image.DataURI()
	result.Image = &uri
	emit(domain.StageEvent{RunID: runID, Stage: domain.StageImage, State: domain.StateComplete, Output: uri})

	return finish(domain.StateComplete, result)
}

func (d *dreamPipeline) classify(ctx context.Context, transcript domain.Transcript) (domain.EmotionLabel, error) {
	return observeStage(d.metrics, domain.StageEmotion, func() (domain.EmotionLabel, error) {
		return d.classifier.Classify(ctx, transcript)
	})
}

func (d *dreamPipeline) generatePrompt(ctx context.Context, transcript domain.Transcript) (domain.ImagePrompt, error) {
	return observeStage(d.metrics, domain.StagePrompt, func() (domain.ImagePrompt, error) {
		return d.promptGenerator.Generate(ctx, transcript)
	})
}

func (d *dreamPipeline) analyzeSequentially(ctx context.Context, transcript domain.Transcript,
	classified func(domain.EmotionLabel)) (domain.EmotionLabel, domain.ImagePrompt, domain.StageName, error) {
	emotion, err := d.classify(ctx, transcript)
	if err != nil {
		return "", "", domain.StageEmotion, err
	}
	classified(emotion)
	prompt, err := d.generatePrompt(ctx, transcript)
	if err != nil {
		return "", "", domain.StagePrompt, err
	}
	return emotion, prompt, "", nil
}

// analyzeConcurrently runs the emotion stage on the pool and the prompt stage inline, then
// joins both. The first failure cancels the other call and is the one reported.
func (d *dreamPipeline) analyzeConcurrently(ctx context.Context,
	transcript domain.Transcript) (domain.EmotionLabel, domain.ImagePrompt, domain.StageName, error) {
	newCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		once       sync.Once
		failedAt   domain.StageName
		firstErr   error
		emotion    domain.EmotionLabel
		classified = make(chan struct{})
	)
	record := func(stage domain.StageName, err error) {
		once.Do(func() {
			failedAt, firstErr = stage, err
			cancel()
		})
	}

	err := d.workerPool.Submit(func() {
		defer close(classified)
		label, err := d.classify(newCtx, transcript)
		if err != nil {
			record(domain.StageEmotion, err)
			return
		}
		emotion = label
	})
	if err != nil {
		return "", "", domain.StageEmotion, err
	}

	prompt, err := d.generatePrompt(newCtx, transcript)
	if err != nil {
		record(domain.StagePrompt, err)
	}
	<-classified

	if firstErr != nil {
		return "", "", failedAt, firstErr
	}
	return emotion, prompt, "", nil
}

func observeStage[T any](metrics outbound.MetricsPort, stage domain.StageName, call func() (T, error)) (T, error) {
	start := time.Now()
	out, err := call()
	outcome := stageOutcomeOK
	if err != nil {
		outcome = stageOutcomeError
	}
	metrics.ObserveStage(stage, outcome, time.Since(start))
	return out, err
}

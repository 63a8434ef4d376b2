package domain

type PipelineState string

const (
	StateAwaitingAudio      PipelineState = "awaiting_audio"
	StateTranscribing       PipelineState = "transcribing"
	StateEmptyTranscript    PipelineState = "empty_transcript"
	StateTranscriptReady    PipelineState = "transcript_ready"
	StateClassifyingEmotion PipelineState = "classifying_emotion"
	StateEmotionReady       PipelineState = "emotion_ready"
	StateGeneratingPrompt   PipelineState = "generating_prompt"
	StateEmptyPrompt        PipelineState = "empty_prompt"
	StatePromptReady        PipelineState = "prompt_ready"
	StateSynthesizingImage  PipelineState = "synthesizing_image"
	StateEmptyImage         PipelineState = "empty_image"
	StateComplete           PipelineState = "complete"
	StateDone               PipelineState = "done"
	StateFailed             PipelineState = "failed"
)

// Terminal reports whether the pipeline stops after reaching s.
func (s PipelineState) Terminal() bool {
	switch s {
	case StateEmptyTranscript, StateEmptyPrompt, StateEmptyImage, StateComplete, StateDone, StateFailed:
		return true
	}
	return false
}

type StageName string

const (
	StageTranscription StageName = "transcription"
	StageEmotion       StageName = "emotion"
	StagePrompt        StageName = "prompt"
	StageImage         StageName = "image"
)

// StageEvent reports one stage outcome. State is the state the pipeline reached with it.
// The last event of a run has State StateDone and carries the aggregate Result.
type StageEvent struct {
	RunID  string
	Stage  StageName
	State  PipelineState
	Output string
	Result *PipelineResult
}

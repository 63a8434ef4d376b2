package dto

import "github.com/Bigmatrix2/Dreammaker/domain"

const (
	EventComplete = "complete"
	EventSkipped  = "skipped"
	EventError    = "error"
)

var skipWarnings = map[domain.PipelineState]string{
	domain.StateEmptyTranscript: "Aucune transcription détectée.",
	domain.StateEmptyPrompt:     "Pas de prompt généré.",
	domain.StateEmptyImage:      "Aucun visuel généré.",
}

type StagePayload struct {
	RunID  string `json:"run_id"`
	Stage  string `json:"stage"`
	State  string `json:"state"`
	Output string `json:"output"`
}

type EmotionPayload struct {
	StagePayload
	Known   bool   `json:"known"`
	Display string `json:"display"`
	Emoji   string `json:"emoji"`
}

type SkippedPayload struct {
	RunID   string `json:"run_id"`
	Stage   string `json:"stage"`
	State   string `json:"state"`
	Message string `json:"message"`
}

type CompletePayload struct {
	RunID string `json:"run_id"`
	DreamResponse
	Debug *DebugResponse `json:"debug,omitempty"`
}

type ErrorPayload struct {
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

// NewStreamEvent names and shapes a pipeline event for the presentation channels.
func NewStreamEvent(event domain.StageEvent, debug bool) (string, interface{}) {
	if event.State == domain.StateDone {
		payload := CompletePayload{RunID: event.RunID}
		if event.Result != nil {
			payload.DreamResponse = NewDreamResponse(event.Result)
			if debug {
				payload.Debug = NewDebugResponse(event.Result)
			}
		}
		return EventComplete, payload
	}

	if warning, ok := skipWarnings[event.State]; ok {
		return EventSkipped, SkippedPayload{
			RunID:   event.RunID,
			Stage:   string(event.Stage),
			State:   string(event.State),
			Message: warning,
		}
	}

	stage := StagePayload{
		RunID:  event.RunID,
		Stage:  string(event.Stage),
		State:  string(event.State),
		Output: event.Output,
	}
	if event.Stage == domain.StageEmotion {
		label := domain.EmotionLabel(event.Output)
		return string(event.Stage), EmotionPayload{
			StagePayload: stage,
			Known:        label.Known(),
			Display:      label.Display(),
			Emoji:        label.Emoji(),
		}
	}
	return string(event.Stage), stage
}

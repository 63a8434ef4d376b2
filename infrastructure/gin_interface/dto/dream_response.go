package dto

import "github.com/Bigmatrix2/Dreammaker/domain"

// DreamResponse is the aggregate pipeline result. Fields past the stage that stopped the run are null.
type DreamResponse struct {
	Transcription string  `json:"transcription"`
	Emotion       *string `json:"emotion"`
	Prompt        *string `json:"prompt"`
	Image         *string `json:"image"`
}

func NewDreamResponse(result *domain.PipelineResult) DreamResponse {
	res := DreamResponse{
		Transcription: string(result.Transcription),
		Image:         result.Image,
	}
	if result.Emotion != nil {
		emotion := string(*result.Emotion)
		res.Emotion = &emotion
	}
	if result.Prompt != nil {
		prompt := string(*result.Prompt)
		res.Prompt = &prompt
	}
	return res
}

// DebugResponse mirrors what each single-stage endpoint would have answered for the same run.
type DebugResponse struct {
	TranscriptionResponse *TranscriptionResponse `json:"transcription_response,omitempty"`
	EmotionResponse       *EmotionResponse       `json:"emotion_response,omitempty"`
	PromptResponse        *PromptResponse        `json:"prompt_response,omitempty"`
	ImageResponse         *ImageResponse         `json:"image_response,omitempty"`
}

func NewDebugResponse(result *domain.PipelineResult) *DebugResponse {
	debug := &DebugResponse{
		TranscriptionResponse: &TranscriptionResponse{Transcription: string(result.Transcription)},
	}
	if result.Emotion != nil {
		debug.EmotionResponse = &EmotionResponse{Emotion: string(*result.Emotion)}
	}
	if result.Prompt != nil {
		debug.PromptResponse = &PromptResponse{Prompt: string(*result.Prompt)}
	}
	if result.Image != nil {
		debug.ImageResponse = &ImageResponse{Image: *result.Image}
	}
	return debug
}

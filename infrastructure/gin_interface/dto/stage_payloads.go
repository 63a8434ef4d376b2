package dto

// TextPayload is the body of the text-consuming stage endpoints. An empty string is accepted.
type TextPayload struct {
	Text *string `json:"text" binding:"required"`
}

type PromptPayload struct {
	Prompt *string `json:"prompt" binding:"required"`
}

type TranscriptionResponse struct {
	Transcription string `json:"transcription"`
}

type EmotionResponse struct {
	Emotion string `json:"emotion"`
}

type PromptResponse struct {
	Prompt string `json:"prompt"`
}

type ImageResponse struct {
	Image string `json:"image"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

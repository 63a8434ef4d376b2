package inbound

import (
	"context"
	"io"

	"github.com/Bigmatrix2/Dreammaker/domain"
)

type PromptSource string

const (
	PromptSourceGroq    PromptSource = "groq"
	PromptSourceMistral PromptSource = "mistral"
)

// StageRunnerPort runs one stage in isolation for the per-stage endpoints.
type StageRunnerPort interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (domain.Transcript, error)
	ClassifyEmotion(ctx context.Context, text string) (domain.EmotionLabel, error)
	GenerateImagePrompt(ctx context.Context, text string, source PromptSource) (domain.ImagePrompt, error)
	GenerateImage(ctx context.Context, prompt string) (domain.GeneratedImage, error)
}

package outbound

import (
	"context"

	"github.com/Bigmatrix2/Dreammaker/domain"
)

type ImageSynthesizerPort interface {
	Synthesize(ctx context.Context, prompt domain.ImagePrompt) (domain.GeneratedImage, error)
}

package outbound

import (
	"context"

	"github.com/Bigmatrix2/Dreammaker/domain"
)

type PromptGeneratorPort interface {
	Generate(ctx context.Context, transcript domain.Transcript) (domain.ImagePrompt, error)
}

package outbound

import (
	"context"

	"github.com/Bigmatrix2/Dreammaker/domain"
)

type EmotionClassifierPort interface {
	Classify(ctx context.Context, transcript domain.Transcript) (domain.EmotionLabel, error)
}

package outbound

import (
	"context"

	"github.com/Bigmatrix2/Dreammaker/domain"
)

type TranscriberPort interface {
	Transcribe(ctx context.Context, clip domain.AudioClip) (domain.Transcript, error)
}

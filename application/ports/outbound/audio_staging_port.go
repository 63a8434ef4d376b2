package outbound

import (
	"context"
	"io"

	"github.com/Bigmatrix2/Dreammaker/domain"
)

// StagedAudio owns the temporary storage behind Clip until Release is called.
type StagedAudio struct {
	Clip    domain.AudioClip
	Release func()
}

type AudioStagingPort interface {
	Stage(ctx context.Context, filename string, content io.Reader) (*StagedAudio, error)
}

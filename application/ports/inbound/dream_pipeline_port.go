package inbound

import (
	"context"
	"io"

	"github.com/Bigmatrix2/Dreammaker/domain"
)

type RunPipelineParams struct {
	Filename string
	Audio    io.Reader
}

type DreamPipelinePort interface {
	Run(ctx context.Context, params RunPipelineParams) (*domain.PipelineResult, error)
	Stream(ctx context.Context, params RunPipelineParams) (<-chan domain.StageEvent, <-chan error)
}

package outbound

import (
	"time"

	"github.com/Bigmatrix2/Dreammaker/domain"
)

type MetricsPort interface {
	ObserveStage(stage domain.StageName, outcome string, elapsed time.Duration)
	ObservePipeline(outcome domain.PipelineState, elapsed time.Duration)
}

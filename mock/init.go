package mock_generator

import (
	"fmt"

	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
	"github.com/Bigmatrix2/Dreammaker/application/services"
	"github.com/Bigmatrix2/Dreammaker/domain"
)

// Init builds stage adapters that replay the fixture at fileName instead of calling upstreams.
func Init(reader FixtureReader, fileName string, logger outbound.LoggerPort) (services.DreamPipelineStages, error) {
	fixture, err := reader.Read(fileName)
	if err != nil {
		return services.DreamPipelineStages{}, err
	}

	var image domain.GeneratedImage
	if fixture.Image.Error == nil && fixture.Image.Output != "" {
		image, err = domain.ParseDataURI(fixture.Image.Output)
		if err != nil {
			return services.DreamPipelineStages{}, fmt.Errorf("invalid image fixture: %w", err)
		}
	}

	logger.InfoWithFields("Using fixture stages", map[string]interface{}{
		"fixture": fileName,
	})

	return services.DreamPipelineStages{
		Transcriber:      &fixtureTranscriber{fixtureStage{logger: logger, stage: domain.StageTranscription, fixture: fixture.Transcription}},
		Classifier:       &fixtureClassifier{fixtureStage{logger: logger, stage: domain.StageEmotion, fixture: fixture.Emotion}},
		PromptGenerator:  &fixturePromptGenerator{fixtureStage{logger: logger, stage: domain.StagePrompt, fixture: fixture.Prompt}},
		ImageSynthesizer: &fixtureImageSynthesizer{fixtureStage: fixtureStage{logger: logger, stage: domain.StageImage, fixture: fixture.Image}, image: image},
	}, nil
}

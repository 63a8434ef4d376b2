package adapters

import (
	"context"
	"strings"

	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
	"github.com/Bigmatrix2/Dreammaker/config"
	"github.com/Bigmatrix2/Dreammaker/domain"
)

const (
	emotionSystemMessage = "Tu es un assistant expert en analyse d'émotions de rêves."
	emotionInstruction   = "Lis ce rêve et classe-le dans l'une de ces catégories : heureux, stressant, neutre, cauchemar, étrange. " +
		"Réponds uniquement par la catégorie.\nRêve :\n"
)

type emotionClassifier struct {
	chat   *chatCompletionClient
	logger outbound.LoggerPort
}

func NewEmotionClassifier(contentFetcher ContentFetcher, secrets outbound.SecretResolverPort,
	conf *config.ChatStageConfig, logger outbound.LoggerPort) outbound.EmotionClassifierPort {
	return &emotionClassifier{
		chat:   newChatCompletionClient(contentFetcher, secrets, conf, logger),
		logger: logger,
	}
}

// Classify does not check the label against the known categories; see domain.EmotionLabel.Known.
func (e *emotionClassifier) Classify(ctx context.Context, transcript domain.Transcript) (domain.EmotionLabel, error) {
	content, err := e.chat.Complete(ctx, emotionSystemMessage, emotionInstruction+string(transcript))
	if err != nil {
		return "", err
	}

	label := domain.NormalizeEmotion(content)
	if !label.Known() {
		e.logger.WarnWithFields("Classifier returned an unknown emotion", map[string]interface{}{
			"emotion": strings.TrimSpace(content),
		})
	}

	return label, nil
}

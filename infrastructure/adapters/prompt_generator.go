package adapters

import (
	"context"
	"strings"

	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
	"github.com/Bigmatrix2/Dreammaker/config"
	"github.com/Bigmatrix2/Dreammaker/domain"
)

// PromptTemplate is the fixed instruction pair used to turn a dream into an image prompt.
type PromptTemplate struct {
	SystemMessage string
	Instruction   string
}

var (
	GroqPromptTemplate = PromptTemplate{
		SystemMessage: "Tu es un assistant expert en prompts d’images oniriques.",
		Instruction: "Lis ce rêve et écris un prompt descriptif pour générer une image onirique qui l’illustre. " +
			"Sois concis et imagé.\nRêve :\n",
	}
	MistralPromptTemplate = PromptTemplate{
		SystemMessage: "Assistant pour transformer des rêves en prompts artistiques.",
		Instruction: "Tu es un assistant qui transforme des rêves en prompts artistiques pour la génération d’images oniriques. " +
			"Utilise un français visuel, poétique et concis.\nVoici le rêve :\n",
	}
)

type promptGenerator struct {
	chat     *chatCompletionClient
	template PromptTemplate
}

func NewPromptGenerator(contentFetcher ContentFetcher, secrets outbound.SecretResolverPort,
	conf *config.ChatStageConfig, template PromptTemplate, logger outbound.LoggerPort) outbound.PromptGeneratorPort {
	return &promptGenerator{
		chat:     newChatCompletionClient(contentFetcher, secrets, conf, logger),
		template: template,
	}
}

func (p *promptGenerator) Generate(ctx context.Context, transcript domain.Transcript) (domain.ImagePrompt, error) {
	content, err := p.chat.Complete(ctx, p.template.SystemMessage, p.template.Instruction+string(transcript))
	if err != nil {
		return "", err
	}
	return domain.ImagePrompt(strings.TrimSpace(content)), nil
}

package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
	"github.com/Bigmatrix2/Dreammaker/config"
	"github.com/Bigmatrix2/Dreammaker/domain"
)

type ClipdropApiRequest struct {
	Prompt string `json:"prompt"`
}

type imageSynthesizer struct {
	ContentFetcher
	logger      outbound.LoggerPort
	secrets     outbound.SecretResolverPort
	imageConfig *config.ImageConfig
}

func NewImageSynthesizer(contentFetcher ContentFetcher, secrets outbound.SecretResolverPort,
	imageConfig *config.ImageConfig, logger outbound.LoggerPort) outbound.ImageSynthesizerPort {
	return &imageSynthesizer{
		ContentFetcher: contentFetcher,
		logger:         logger,
		secrets:        secrets,
		imageConfig:    imageConfig,
	}
}

// Synthesize returns the raw upstream bytes as a PNG image.
func (i *imageSynthesizer) Synthesize(ctx context.Context, prompt domain.ImagePrompt) (domain.GeneratedImage, error) {
	apiKey, err := i.secrets.Resolve(ctx, i.imageConfig.CredentialName)
	if err != nil {
		return domain.GeneratedImage{}, err
	}

	req, err := i.getRequest(ctx, string(prompt), apiKey)
	if err != nil {
		i.logger.Error(err, "Failed to create the HTTP request")
		return domain.GeneratedImage{}, err
	}

	content, err := i.FetchContent(req)
	if err != nil {
		return domain.GeneratedImage{}, err
	}

	i.logger.DebugWithFields("Image synthesized", map[string]interface{}{
		"bytes": len(content),
	})

	return domain.GeneratedImage{
		MimeType: domain.MediaTypePNG,
		Data:     content,
	}, nil
}

func (i *imageSynthesizer) getRequest(ctx context.Context, prompt string, apiKey string) (*http.Request, error) {
	jsonPayload, err := json.Marshal(ClipdropApiRequest{Prompt: prompt})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.imageConfig.ApiUrl, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, err
	}

	reqHeaders := map[string]string{
		"x-api-key":    apiKey,
		"Content-Type": "application/json",
	}
	for key, value := range reqHeaders {
		req.Header.Add(key, value)
	}

	return req, nil
}

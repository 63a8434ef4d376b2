package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
	"github.com/Bigmatrix2/Dreammaker/config"
)

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []chatCompletionChoice `json:"choices"`
}

type chatCompletionChoice struct {
	Index   int `json:"index"`
	Message struct {
		Content *string `json:"content"`
	} `json:"message"`
}

// content is the first choice's text, or "" when the upstream returned nothing.
func (r chatCompletionResponse) content() string {
	if len(r.Choices) == 0 || r.Choices[0].Message.Content == nil {
		return ""
	}
	return *r.Choices[0].Message.Content
}

// chatCompletionClient sends one system+user exchange to an OpenAI-compatible endpoint.
type chatCompletionClient struct {
	ContentFetcher
	logger  outbound.LoggerPort
	secrets outbound.SecretResolverPort
	conf    *config.ChatStageConfig
}

func newChatCompletionClient(contentFetcher ContentFetcher, secrets outbound.SecretResolverPort,
	conf *config.ChatStageConfig, logger outbound.LoggerPort) *chatCompletionClient {
	return &chatCompletionClient{
		ContentFetcher: contentFetcher,
		logger:         logger,
		secrets:        secrets,
		conf:           conf,
	}
}

func (c *chatCompletionClient) Complete(ctx context.Context, systemMessage string, userMessage string) (string, error) {
	apiKey, err := c.secrets.Resolve(ctx, c.conf.CredentialName)
	if err != nil {
		return "", err
	}

	req, err := c.createRequest(ctx, apiKey, systemMessage, userMessage)
	if err != nil {
		c.logger.Error(err, "Failed to create the chat completion request")
		return "", err
	}

	rawRes, err := c.FetchContent(req)
	if err != nil {
		return "", err
	}

	var res chatCompletionResponse
	if err := json.Unmarshal(rawRes, &res); err != nil {
		c.logger.Error(err, "Failed to unmarshal the chat completion response")
		return "", fmt.Errorf("failed to parse chat completion response: %w", err)
	}

	return res.content(), nil
}

func (c *chatCompletionClient) createRequest(ctx context.Context, apiKey string, systemMessage string,
	userMessage string) (*http.Request, error) {
	promptReq := chatCompletionRequest{
		Model: c.conf.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemMessage},
			{Role: "user", Content: userMessage},
		},
		Temperature: c.conf.Temperature,
		MaxTokens:   c.conf.MaxTokens,
	}

	payloadBytes, err := json.Marshal(promptReq)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.conf.ApiUrl, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

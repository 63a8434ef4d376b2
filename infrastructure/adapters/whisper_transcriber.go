package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
	"github.com/Bigmatrix2/Dreammaker/config"
	"github.com/Bigmatrix2/Dreammaker/domain"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// whisperResponse leaves Text nil when the upstream omits it.
type whisperResponse struct {
	Text *string `json:"text"`
}

func (r whisperResponse) transcript() domain.Transcript {
	if r.Text == nil {
		return ""
	}
	return domain.Transcript(*r.Text)
}

type whisperTranscriber struct {
	ContentFetcher
	logger  outbound.LoggerPort
	secrets outbound.SecretResolverPort
	conf    *config.TranscriberConfig
}

func NewWhisperTranscriber(contentFetcher ContentFetcher, secrets outbound.SecretResolverPort,
	conf *config.TranscriberConfig, logger outbound.LoggerPort) outbound.TranscriberPort {
	return &whisperTranscriber{
		ContentFetcher: contentFetcher,
		logger:         logger,
		secrets:        secrets,
		conf:           conf,
	}
}

func (t *whisperTranscriber) Transcribe(ctx context.Context, clip domain.AudioClip) (domain.Transcript, error) {
	apiKey, err := t.secrets.Resolve(ctx, t.conf.CredentialName)
	if err != nil {
		return "", err
	}

	req, err := t.getRequest(ctx, clip, apiKey)
	if err != nil {
		t.logger.Error(err, "Failed to create the transcription request")
		return "", err
	}

	rawRes, err := t.FetchContent(req)
	if err != nil {
		return "", err
	}

	var res whisperResponse
	if err := json.Unmarshal(rawRes, &res); err != nil {
		t.logger.Error(err, "Failed to unmarshal the transcription response")
		return "", fmt.Errorf("failed to parse transcription response: %w", err)
	}

	t.logger.DebugWithFields("Audio transcribed", map[string]interface{}{
		"filename": clip.Filename,
		"chars":    len(res.transcript()),
	})

	return res.transcript(), nil
}

func (t *whisperTranscriber) getRequest(ctx context.Context, clip domain.AudioClip, apiKey string) (*http.Request, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(clip.Filename)))
	header.Set("Content-Type", clip.MediaType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, clip.Content); err != nil {
		return nil, fmt.Errorf("failed to copy audio data: %w", err)
	}
	if err := writer.WriteField("model", t.conf.Model); err != nil {
		return nil, fmt.Errorf("failed to write model field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.conf.ApiUrl, &body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return req, nil
}

package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Bigmatrix2/Dreammaker/config"
	"github.com/Bigmatrix2/Dreammaker/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageSynthesizer_Synthesize(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0xff, 0x10}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "clip-test", r.Header.Get("x-api-key"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var body ClipdropApiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Une ville embrasée", body.Prompt)

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}))
	defer server.Close()

	logger := testLogger()
	synthesizer := NewImageSynthesizer(NewContentFetcher(logger, domain.StageImage, time.Second),
		staticSecrets{"CLIPDROP_API_KEY": "clip-test"},
		&config.ImageConfig{ApiUrl: server.URL, CredentialName: "CLIPDROP_API_KEY"}, logger)

	image, err := synthesizer.Synthesize(context.Background(), "Une ville embrasée")
	require.NoError(t, err)

	uri := image.DataURI()
	assert.Regexp(t, `^data:image/png;base64,`, uri)

	decoded, err := domain.ParseDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, png, decoded.Data)
	assert.Equal(t, domain.MediaTypePNG, decoded.MimeType)
}

func TestImageSynthesizer_UpstreamErrorPassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":"not enough credits"}`))
	}))
	defer server.Close()

	logger := testLogger()
	synthesizer := NewImageSynthesizer(NewContentFetcher(logger, domain.StageImage, time.Second),
		staticSecrets{"CLIPDROP_API_KEY": "clip-test"},
		&config.ImageConfig{ApiUrl: server.URL, CredentialName: "CLIPDROP_API_KEY"}, logger)

	_, err := synthesizer.Synthesize(context.Background(), "Une ville embrasée")

	var upstreamErr *domain.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusPaymentRequired, upstreamErr.Status)
	assert.Equal(t, `{"error":"not enough credits"}`, upstreamErr.Body)
	assert.Equal(t, domain.StageImage, upstreamErr.Stage)
}

func TestImageSynthesizer_MissingCredential(t *testing.T) {
	logger := testLogger()
	synthesizer := NewImageSynthesizer(NewContentFetcher(logger, domain.StageImage, time.Second),
		staticSecrets{}, &config.ImageConfig{ApiUrl: "http://127.0.0.1:0", CredentialName: "CLIPDROP_API_KEY"}, logger)

	_, err := synthesizer.Synthesize(context.Background(), "Une ville embrasée")

	require.ErrorIs(t, err, domain.ErrMissingCredential)
}

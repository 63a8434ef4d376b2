package adapters

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Bigmatrix2/Dreammaker/config"
	"github.com/Bigmatrix2/Dreammaker/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTranscriber(url string, secrets staticSecrets) *whisperTranscriber {
	logger := testLogger()
	return NewWhisperTranscriber(
		NewContentFetcher(logger, domain.StageTranscription, time.Second),
		secrets,
		&config.TranscriberConfig{ApiUrl: url, Model: "whisper-1", CredentialName: "OPENAI_API_KEY"},
		logger,
	).(*whisperTranscriber)
}

func TestWhisperTranscriber_Transcribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "dream.mp3", header.Filename)
		assert.Equal(t, domain.MediaTypeMPEG, header.Header.Get("Content-Type"))

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "fake-audio", string(content))

		_, _ = w.Write([]byte(`{"text":"Je volais au-dessus d'une ville en feu"}`))
	}))
	defer server.Close()

	transcriber := newTestTranscriber(server.URL, staticSecrets{"OPENAI_API_KEY": "sk-test"})

	transcript, err := transcriber.Transcribe(context.Background(),
		domain.NewAudioClip("dream.mp3", strings.NewReader("fake-audio")))

	require.NoError(t, err)
	assert.Equal(t, domain.Transcript("Je volais au-dessus d'une ville en feu"), transcript)
}

func TestWhisperTranscriber_MissingTextDefaultsToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"language":"fr"}`))
	}))
	defer server.Close()

	transcriber := newTestTranscriber(server.URL, staticSecrets{"OPENAI_API_KEY": "sk-test"})

	transcript, err := transcriber.Transcribe(context.Background(),
		domain.NewAudioClip("dream.wav", strings.NewReader("silence")))

	require.NoError(t, err)
	assert.True(t, transcript.Empty())
}

func TestWhisperTranscriber_UpstreamErrorPassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached"}}`))
	}))
	defer server.Close()

	transcriber := newTestTranscriber(server.URL, staticSecrets{"OPENAI_API_KEY": "sk-test"})

	_, err := transcriber.Transcribe(context.Background(),
		domain.NewAudioClip("dream.mp3", strings.NewReader("fake-audio")))

	var upstreamErr *domain.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusTooManyRequests, upstreamErr.Status)
	assert.Equal(t, `{"error":{"message":"Rate limit reached"}}`, upstreamErr.Body)
	assert.Equal(t, domain.StageTranscription, upstreamErr.Stage)
}

func TestWhisperTranscriber_MissingCredential(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	transcriber := newTestTranscriber(server.URL, staticSecrets{})

	_, err := transcriber.Transcribe(context.Background(),
		domain.NewAudioClip("dream.mp3", strings.NewReader("fake-audio")))

	require.ErrorIs(t, err, domain.ErrMissingCredential)
	assert.EqualError(t, err, "Clé API 'OPENAI_API_KEY' manquante.")
	assert.False(t, called)
}

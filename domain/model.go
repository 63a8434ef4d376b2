package domain

import (
	"encoding/base64"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MediaTypeMPEG        = "audio/mpeg"
	MediaTypeWAV         = "audio/wav"
	MediaTypeOctetStream = "application/octet-stream"
	MediaTypePNG         = "image/png"
)

// MediaTypeForFilename infers the declared media type of an uploaded clip from its extension.
func MediaTypeForFilename(filename string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "mp3":
		return MediaTypeMPEG
	case "wav":
		return MediaTypeWAV
	default:
		return MediaTypeOctetStream
	}
}

// AudioClip is consumed exactly once by the transcriber.
type AudioClip struct {
	Filename  string
	MediaType string
	Content   io.Reader
}

func NewAudioClip(filename string, content io.Reader) AudioClip {
	return AudioClip{
		Filename:  filename,
		MediaType: MediaTypeForFilename(filename),
		Content:   content,
	}
}

// Transcript is empty when no speech was detected.
type Transcript string

func (t Transcript) Empty() bool {
	return t == ""
}

type EmotionLabel string

const (
	EmotionHappy     EmotionLabel = "heureux"
	EmotionStressful EmotionLabel = "stressant"
	EmotionNeutral   EmotionLabel = "neutre"
	EmotionNightmare EmotionLabel = "cauchemar"
	EmotionStrange   EmotionLabel = "étrange"
)

const IndeterminateEmotion = "Indéterminée"

var emotionEmojis = map[EmotionLabel]string{
	EmotionHappy:     "😊",
	EmotionStressful: "😰",
	EmotionNeutral:   "😐",
	EmotionNightmare: "😱",
	EmotionStrange:   "🌌",
}

// NormalizeEmotion trims and lower-cases raw classifier output. Unknown values pass through.
func NormalizeEmotion(raw string) EmotionLabel {
	return EmotionLabel(strings.ToLower(strings.TrimSpace(raw)))
}

func (e EmotionLabel) Known() bool {
	_, ok := emotionEmojis[EmotionLabel(strings.ToLower(string(e)))]
	return ok
}

func (e EmotionLabel) Emoji() string {
	if emoji, ok := emotionEmojis[EmotionLabel(strings.ToLower(string(e)))]; ok {
		return emoji
	}
	return "🌙"
}

// Display capitalizes the label, or reports it as indeterminate when blank.
func (e EmotionLabel) Display() string {
	label := strings.ToLower(string(e))
	if label == "" {
		return IndeterminateEmotion
	}
	first, size := utf8.DecodeRuneInString(label)
	return string(unicode.ToUpper(first)) + label[size:]
}

type ImagePrompt string

func (p ImagePrompt) Empty() bool {
	return strings.TrimSpace(string(p)) == ""
}

type GeneratedImage struct {
	MimeType string
	Data     []byte
}

func (g GeneratedImage) Empty() bool {
	return len(g.Data) == 0
}

// DataURI encodes the image inline as data:<mime>;base64,<payload>.
func (g GeneratedImage) DataURI() string {
	mimeType := g.MimeType
	if mimeType == "" {
		mimeType = MediaTypePNG
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(g.Data))
}

func ParseDataURI(uri string) (GeneratedImage, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return GeneratedImage{}, fmt.Errorf("not a data URI")
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return GeneratedImage{}, fmt.Errorf("data URI has no payload separator")
	}
	mimeType, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return GeneratedImage{}, fmt.Errorf("data URI is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return GeneratedImage{}, fmt.Errorf("failed to decode data URI payload: %w", err)
	}
	return GeneratedImage{MimeType: mimeType, Data: data}, nil
}

// PipelineResult fields other than the transcription are nil when the chain stopped before them.
type PipelineResult struct {
	Transcription Transcript    `json:"transcription"`
	Emotion       *EmotionLabel `json:"emotion"`
	Prompt        *ImagePrompt  `json:"prompt"`
	Image         *string       `json:"image"`
}

package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingCredential = errors.New("missing credential")
	ErrEmptyAudio        = errors.New("audio upload is empty")
)

type MissingCredentialError struct {
	Name string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("Clé API '%s' manquante.", e.Name)
}

func (e *MissingCredentialError) Is(target error) bool {
	return target == ErrMissingCredential
}

// UpstreamError carries a non-success upstream response unmodified.
type UpstreamError struct {
	Stage   StageName
	Status  int
	Body    string
	Timeout bool
}

func NewUpstreamTimeout(stage StageName) *UpstreamError {
	return &UpstreamError{
		Stage:   stage,
		Status:  http.StatusGatewayTimeout,
		Body:    "timeout",
		Timeout: true,
	}
}

func (e *UpstreamError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s upstream timed out", e.Stage)
	}
	return fmt.Sprintf("%s upstream returned status %d: %s", e.Stage, e.Status, e.Body)
}

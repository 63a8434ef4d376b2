package adapters

import (
	"context"
	"io"

	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
	"github.com/Bigmatrix2/Dreammaker/domain"
)

func testLogger() outbound.LoggerPort {
	return NewZerologWrapper(io.Discard, "debug")
}

type staticSecrets map[string]string

func (s staticSecrets) Resolve(_ context.Context, name string) (string, error) {
	if value, ok := s[name]; ok {
		return value, nil
	}
	return "", &domain.MissingCredentialError{Name: name}
}

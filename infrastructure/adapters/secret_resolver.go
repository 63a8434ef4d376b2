package adapters

import (
	"context"
	"fmt"

	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
	"github.com/Bigmatrix2/Dreammaker/domain"
)

// secretResolver consults its stores in order on every call. Nothing is cached, so a
// credential added to a store is seen by the next request.
type secretResolver struct {
	stores []outbound.SecretStorePort
	logger outbound.LoggerPort
}

func NewSecretResolver(logger outbound.LoggerPort, stores ...outbound.SecretStorePort) outbound.SecretResolverPort {
	return &secretResolver{
		stores: stores,
		logger: logger,
	}
}

func (s *secretResolver) Resolve(ctx context.Context, name string) (string, error) {
	for _, store := range s.stores {
		value, ok, err := store.Lookup(ctx, name)
		if err != nil {
			s.logger.ErrorWithFields(err, "Secret store lookup failed", map[string]interface{}{
				"store":  store.Name(),
				"secret": name,
			})
			return "", fmt.Errorf("%s secret store: %w", store.Name(), err)
		}
		if ok && value != "" {
			return value, nil
		}
	}

	s.logger.WarnWithFields("Credential not found", map[string]interface{}{
		"secret": name,
	})

	return "", &domain.MissingCredentialError{Name: name}
}

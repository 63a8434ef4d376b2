package adapters

import (
	"context"
	"os"

	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
)

type envSecretStore struct{}

func NewEnvSecretStore() outbound.SecretStorePort {
	return envSecretStore{}
}

func (envSecretStore) Name() string {
	return "env"
}

func (envSecretStore) Lookup(_ context.Context, name string) (string, bool, error) {
	value, ok := os.LookupEnv(name)
	return value, ok && value != "", nil
}

package adapters

import (
	"context"
	"errors"
	"io/fs"

	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
	"github.com/joho/godotenv"
)

// fileSecretStore reads a dotenv file holding credentials entered for the running session.
// The file is re-read on every lookup and a missing file means no session secrets.
type fileSecretStore struct {
	path string
}

func NewFileSecretStore(path string) outbound.SecretStorePort {
	return &fileSecretStore{path: path}
}

func (f *fileSecretStore) Name() string {
	return "file"
}

func (f *fileSecretStore) Lookup(_ context.Context, name string) (string, bool, error) {
	values, err := godotenv.Read(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	value, ok := values[name]
	return value, ok && value != "", nil
}

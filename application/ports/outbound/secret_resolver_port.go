package outbound

import "context"

// SecretResolverPort fails with domain.ErrMissingCredential when no source knows the name.
type SecretResolverPort interface {
	Resolve(ctx context.Context, name string) (string, error)
}

// SecretStorePort is a single credential source. ok is false when the name is unknown to it.
type SecretStorePort interface {
	Name() string
	Lookup(ctx context.Context, name string) (value string, ok bool, err error)
}

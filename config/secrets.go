package config

import "fmt"

const (
	SecretStoreNone = "none"
	SecretStoreFile = "file"
	SecretStoreAWS  = "aws"
)

// SecretsConfig selects the session secret store consulted before the environment.
type SecretsConfig struct {
	Store     string `yaml:"store"`
	FilePath  string `yaml:"file_path"`
	AWSRegion string `yaml:"aws_region"`
	AWSPrefix string `yaml:"aws_prefix"`
}

func defaultSecretsConfig() SecretsConfig {
	return SecretsConfig{
		Store:    SecretStoreFile,
		FilePath: "secrets.env",
	}
}

func (s *SecretsConfig) applyEnv() error {
	envString("SECRETS_STORE", &s.Store)
	envString("SECRETS_FILE", &s.FilePath)
	envString("SECRETS_AWS_REGION", &s.AWSRegion)
	envString("SECRETS_AWS_PREFIX", &s.AWSPrefix)
	return nil
}

func (s *SecretsConfig) validate() error {
	switch s.Store {
	case SecretStoreNone:
	case SecretStoreFile:
		if s.FilePath == "" {
			return fmt.Errorf("SECRETS_FILE must be set")
		}
	case SecretStoreAWS:
		if s.AWSRegion == "" {
			return fmt.Errorf("SECRETS_AWS_REGION must be set")
		}
	default:
		return fmt.Errorf("SECRETS_STORE must be one of none, file, aws; got %q", s.Store)
	}
	return nil
}

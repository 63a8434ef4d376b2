package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Address        string        `yaml:"address"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	WorkerPoolSize int           `yaml:"worker_pool_size"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes"`
}

func defaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:        ":8000",
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   5 * time.Minute,
		WorkerPoolSize: 120,
		MaxUploadBytes: 25 << 20,
	}
}

func (s *ServerConfig) applyEnv() error {
	envString("SERVER_ADDRESS", &s.Address)
	if err := envDuration("SERVER_READ_TIMEOUT", &s.ReadTimeout); err != nil {
		return err
	}
	if err := envDuration("SERVER_WRITE_TIMEOUT", &s.WriteTimeout); err != nil {
		return err
	}
	return envInt("WORKER_POOL_SIZE", &s.WorkerPoolSize)
}

func (s *ServerConfig) validate() error {
	if s.Address == "" {
		return fmt.Errorf("SERVER_ADDRESS must be set")
	}
	if s.WorkerPoolSize <= 0 {
		return fmt.Errorf("WORKER_POOL_SIZE must be positive")
	}
	if s.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be positive")
	}
	return nil
}

package app

import (
	"fmt"

	"github.com/shrimpsizemoose/eduspace/internal/eduspace"
	"github.com/shrimpsizemoose/eduspace/internal/gradebook"
	"github.com/shrimpsizemoose/eduspace/internal/store"
)

// Service bundles everything the server, bot and exporter binaries share.
type Service struct {
	Config    *Config
	Store     store.KV
	Workspace *eduspace.Workspace
	Grades    *gradebook.Service
}

func NewService(configPath string) (*Service, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewServiceFromConfig(config)
}

func NewServiceFromConfig(config *Config) (*Service, error) {
	kv, err := NewStore(config.Storage.DSN, config.Storage.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	return &Service{
		Config:    config,
		Store:     kv,
		Workspace: eduspace.NewWorkspace(kv),
		Grades:    gradebook.NewService(kv),
	}, nil
}

// SessionStore scopes per-session keys like currentUser to one browser session.
func (s *Service) SessionStore(sid string) store.KV {
	return store.WithPrefix(s.Store, "session:"+sid+":")
}

func (s *Service) Close() error {
	if err := s.Store.Close(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}

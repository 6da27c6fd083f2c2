package main

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/keepsake/internal/config"
	"github.com/at-ishikawa/keepsake/internal/library"
	"github.com/at-ishikawa/keepsake/internal/profile"
	"github.com/at-ishikawa/keepsake/internal/storage"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// workspace is what most commands need: config, an open store and the library
// of the selected profile.
type workspace struct {
	cfg     *config.Config
	profile string
	lib     *library.Library
	close   func() error
}

func openWorkspace(ctx context.Context) (*workspace, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	name, err := profile.NewRegistry(cfg.Profiles.File).Resolve(profileName, cfg.Profile)
	if err != nil {
		return nil, fmt.Errorf("profile.Resolve() > %w", err)
	}
	if err := profile.ValidateName(name); err != nil {
		return nil, err
	}

	store, closeFn, err := storage.Open(ctx, cfg.Storage, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("storage.Open() > %w", err)
	}
	return &workspace{
		cfg:     cfg,
		profile: name,
		lib:     library.New(store, name),
		close:   closeFn,
	}, nil
}

// withKind opens the workspace and resolves a kind argument.
func withKind(ctx context.Context, kindName string, fn func(ws *workspace, kind library.Kind) error) error {
	ws, err := openWorkspace(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = ws.close() }()

	kind, err := ws.lib.Kind(kindName)
	if err != nil {
		return err
	}
	return fn(ws, kind)
}

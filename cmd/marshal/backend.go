package main

import (
	"context"
	"fmt"
	"os"

	"github.com/wippyai/rapier-go/config"
	"github.com/wippyai/rapier-go/dylib"
	"github.com/wippyai/rapier-go/engine"
	"github.com/wippyai/rapier-go/handle"
	"github.com/wippyai/rapier-go/linalg"
)

// backend is a loaded native engine.
type backend interface {
	linalg.Natives
	Ledger() *handle.Ledger
	Close(ctx context.Context) error
}

type libraryBackend struct {
	*dylib.Library
}

func (b libraryBackend) Close(context.Context) error {
	return b.Library.Close()
}

func openBackend(ctx context.Context, cfg *config.Config) (backend, string, error) {
	ecfg := &engine.Config{
		MemoryLimitPages: cfg.MemoryLimitPages,
		Checked:          cfg.Checked,
	}

	switch cfg.Backend {
	case config.BackendReference:
		e, err := engine.NewReference(ctx, ecfg)
		if err != nil {
			return nil, "", err
		}
		return e, "reference guest", nil

	case config.BackendWasm:
		data, err := os.ReadFile(cfg.Module)
		if err != nil {
			return nil, "", fmt.Errorf("read module: %w", err)
		}
		e, err := engine.New(ctx, data, ecfg)
		if err != nil {
			return nil, "", err
		}
		return e, cfg.Module, nil

	case config.BackendDylib:
		lib, err := dylib.Open(cfg.Library, &dylib.Config{Checked: cfg.Checked})
		if err != nil {
			return nil, "", err
		}
		return libraryBackend{lib}, cfg.Library, nil

	default:
		return nil, "", fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

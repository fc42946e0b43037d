package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/Aidin1998/laptrack/internal/config"
)

// Provider names accepted by STORE_PROVIDER.
const (
	ProviderMongoDB = "mongodb"
	ProviderMemory  = "in-memory"
)

// Constructor opens a Store from the store section of the configuration.
type Constructor func(ctx context.Context, cfg config.StoreConfig) (Store, error)

// New opens the store selected by cfg.Provider. Constructors are injected by
// the caller so this package stays free of driver imports.
func New(ctx context.Context, cfg config.StoreConfig, constructors map[string]Constructor) (Store, error) {
	provider := cfg.Provider
	if provider == "memory" {
		provider = ProviderMemory
	}
	constructor, ok := constructors[provider]
	if !ok {
		available := make([]string, 0, len(constructors))
		for name := range constructors {
			available = append(available, name)
		}
		sort.Strings(available)
		return nil, fmt.Errorf("unsupported store provider %q, available: %v", cfg.Provider, available)
	}
	return constructor(ctx, cfg)
}

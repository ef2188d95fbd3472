package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/b45t3rr/genai-triage/internal/config"
	"github.com/b45t3rr/genai-triage/internal/logging"
)

// Factory builds providers from configuration and caches them, so repeated
// requests for the same provider/model/temperature share one Genkit app.
type Factory struct {
	cfg *config.Config

	mu    sync.Mutex
	cache map[string]Provider
}

// NewFactory returns a factory over the given configuration.
func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		cfg:   cfg,
		cache: make(map[string]Provider),
	}
}

// Provider resolves (and caches) a provider by name. An empty name selects
// the configured default provider.
func (f *Factory) Provider(ctx context.Context, name string) (Provider, error) {
	if name == "" {
		name = f.cfg.DefaultProvider
	}
	name = strings.ToLower(name)

	pc, err := f.cfg.Provider(name)
	if err != nil {
		return nil, err
	}

	key := cacheKey(name, pc.Model, pc.Temperature)

	f.mu.Lock()
	defer f.mu.Unlock()

	if p, ok := f.cache[key]; ok {
		return p, nil
	}

	p, err := newGenkitProvider(ctx, name, pc)
	if err != nil {
		return nil, err
	}
	logging.L().Debugw("provider initialized", "provider", name, "model", pc.Model)

	f.cache[key] = p
	return p, nil
}

func cacheKey(provider, model string, temperature float64) string {
	return fmt.Sprintf("%s/%s@%.2f", provider, model, temperature)
}

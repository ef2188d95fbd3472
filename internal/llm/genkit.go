package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/openai/openai-go/option"

	"github.com/b45t3rr/genai-triage/internal/config"
)

// genkitProvider adapts a Genkit app to the Provider interface. One instance
// is bound to a single provider/model pair.
type genkitProvider struct {
	app         *genkit.Genkit
	name        string
	model       string
	temperature float64
}

// initApp builds the Genkit app with the plugin matching the provider.
// Gemini uses the native Google AI plugin; every other provider speaks the
// OpenAI-compatible API on its own base URL.
func initApp(ctx context.Context, name string, pc config.ProviderConfig) (*genkit.Genkit, error) {
	switch name {
	case config.ProviderGemini:
		return genkit.Init(ctx, genkit.WithPlugins(
			&googlegenai.GoogleAI{APIKey: pc.APIKey},
		)), nil

	case config.ProviderOpenAI, config.ProviderXAI, config.ProviderDeepSeek, config.ProviderAnthropic:
		return genkit.Init(ctx, genkit.WithPlugins(
			&compat_oai.OpenAICompatible{
				Provider: name,
				Opts:     compatOpts(pc),
			},
		)), nil

	default:
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
}

// compatOpts translates provider settings into openai-go request options for
// the OpenAI-compatible plugin. The base URL is only overridden when set so
// the client default applies otherwise.
func compatOpts(pc config.ProviderConfig) []option.RequestOption {
	opts := []option.RequestOption{option.WithAPIKey(pc.APIKey)}
	if pc.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(pc.BaseURL))
	}
	return opts
}

func newGenkitProvider(ctx context.Context, name string, pc config.ProviderConfig) (*genkitProvider, error) {
	app, err := initApp(ctx, name, pc)
	if err != nil {
		return nil, err
	}
	return &genkitProvider{
		app:         app,
		name:        name,
		model:       pc.Model,
		temperature: pc.Temperature,
	}, nil
}

func (p *genkitProvider) Generate(ctx context.Context, system, query string) (string, error) {
	prompt := query
	if system != "" {
		prompt = system + "\n\n" + query
	}

	resp, err := genkit.Generate(ctx, p.app,
		ai.WithModelName(p.name+"/"+p.model),
		ai.WithPrompt(prompt),
		ai.WithConfig(map[string]any{"temperature": p.temperature}),
		ai.WithMiddleware(retryMiddleware(3, 1*time.Second)),
	)
	if err != nil {
		return "", fmt.Errorf("%s generation failed: %w", p.name, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrNoResponse
	}
	return text, nil
}

func (p *genkitProvider) Name() string  { return p.name }
func (p *genkitProvider) Model() string { return p.model }

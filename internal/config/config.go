// Package config loads application settings from an optional YAML file, a
// .env file and the process environment. Environment variables always win.
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Provider names accepted by the LLM layer.
const (
	ProviderOpenAI    = "openai"
	ProviderXAI       = "xai"
	ProviderGemini    = "gemini"
	ProviderDeepSeek  = "deepseek"
	ProviderAnthropic = "anthropic"
)

// ProviderConfig holds the model settings for one LLM provider.
type ProviderConfig struct {
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url,omitempty"`
	Temperature float64 `yaml:"temperature"`
}

// Config is the full application configuration.
type Config struct {
	DefaultProvider     string                    `yaml:"default_provider"`
	Providers           map[string]ProviderConfig `yaml:"providers"`
	AppName             string                    `yaml:"app_name"`
	AppVersion          string                    `yaml:"app_version"`
	Debug               bool                      `yaml:"debug"`
	MaxFileSizeMB       int                       `yaml:"max_file_size_mb"`
	SupportedExtensions []string                  `yaml:"supported_extensions"`
	OutputDir           string                    `yaml:"output_dir"`
	PDFToTextPath       string                    `yaml:"pdftotext_path"`
	SemgrepPath         string                    `yaml:"semgrep_path"`
}

// Defaults returns the built-in configuration, before any file or
// environment override.
func Defaults() *Config {
	return &Config{
		DefaultProvider: ProviderOpenAI,
		Providers: map[string]ProviderConfig{
			ProviderOpenAI:    {Model: "gpt-5-nano", Temperature: 0.1, BaseURL: "https://api.openai.com/v1"},
			ProviderXAI:       {Model: "grok-beta", Temperature: 0.1, BaseURL: "https://api.x.ai/v1"},
			ProviderGemini:    {Model: "gemini-pro", Temperature: 0.1},
			ProviderDeepSeek:  {Model: "deepseek-chat", Temperature: 0.1, BaseURL: "https://api.deepseek.com/v1"},
			ProviderAnthropic: {Model: "claude-3-sonnet-20240229", Temperature: 0.1, BaseURL: "https://api.anthropic.com/v1"},
		},
		AppName:             "genai-triage",
		AppVersion:          "1.0.0",
		MaxFileSizeMB:       50,
		SupportedExtensions: []string{".pdf"},
		OutputDir:           ".",
		PDFToTextPath:       "pdftotext",
		SemgrepPath:         "semgrep",
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is empty or the file is absent it is skipped), then .env, then the
// environment.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	// .env only fills variables the environment does not already set.
	_ = godotenv.Load()

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DEFAULT_MODEL_PROVIDER"); v != "" {
		c.DefaultProvider = strings.ToLower(v)
	}
	if v := os.Getenv("DEBUG"); v != "" {
		c.Debug = truthy(v)
	}
	if v := os.Getenv("MAX_FILE_SIZE_MB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxFileSizeMB = n
		}
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}

	for _, name := range []string{ProviderOpenAI, ProviderXAI, ProviderGemini, ProviderDeepSeek, ProviderAnthropic} {
		pc := c.Providers[name]
		prefix := strings.ToUpper(name)
		if v := os.Getenv(prefix + "_API_KEY"); v != "" {
			pc.APIKey = v
		}
		if v := os.Getenv(prefix + "_MODEL"); v != "" {
			pc.Model = v
		}
		if v := os.Getenv(prefix + "_BASE_URL"); v != "" {
			pc.BaseURL = v
		}
		if v := os.Getenv(prefix + "_TEMPERATURE"); v != "" {
			if t, err := strconv.ParseFloat(v, 64); err == nil {
				pc.Temperature = t
			}
		}
		c.Providers[name] = pc
	}
}

// Provider resolves a provider by name, falling back to the default when
// name is empty. Unknown providers and providers without an API key are
// errors.
func (c *Config) Provider(name string) (ProviderConfig, error) {
	if name == "" {
		name = c.DefaultProvider
	}
	name = strings.ToLower(name)

	pc, ok := c.Providers[name]
	if !ok {
		return ProviderConfig{}, fmt.Errorf("unknown provider %q (available: %s)", name, strings.Join(providerNames(c.Providers), ", "))
	}
	if pc.APIKey == "" {
		return ProviderConfig{}, fmt.Errorf("provider %q has no API key configured (set %s_API_KEY)", name, strings.ToUpper(name))
	}
	return pc, nil
}

// AvailableProviders lists providers that have an API key, sorted by name.
func (c *Config) AvailableProviders() []string {
	var available []string
	for name, pc := range c.Providers {
		if pc.APIKey != "" {
			available = append(available, name)
		}
	}
	sort.Strings(available)
	return available
}

// MaxFileSize returns the file size limit in bytes.
func (c *Config) MaxFileSize() int64 {
	return int64(c.MaxFileSizeMB) * 1024 * 1024
}

// SupportsExtension reports whether the file extension is accepted. The
// comparison is case insensitive.
func (c *Config) SupportsExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range c.SupportedExtensions {
		if strings.ToLower(supported) == ext {
			return true
		}
	}
	return false
}

func providerNames(providers map[string]ProviderConfig) []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// Package config holds runtime settings for the chat CLI.
package config

import (
	"strings"

	"github.com/openai/openai-go"
)

const (
	// DefaultModel is used against OpenAI when neither OPENAI_MODEL nor -model is given.
	DefaultModel = string(openai.ChatModelGPT4oMini)
	// GeminiModel is the default when talking to GeminiBaseURL.
	GeminiModel = "gemini-2.0-flash"
	// DefaultSystemPrompt seeds every new transcript.
	DefaultSystemPrompt = "You are a helpful AI assistant."
	// GeminiBaseURL is Gemini's OpenAI-compatible endpoint, used with GOOGLE_API_KEY.
	GeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
)

// Config holds all runtime configuration for the chat session.
type Config struct {
	SystemPrompt string
	Verbose      bool

	APIKey  string
	BaseURL string
	Model   string
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		SystemPrompt: DefaultSystemPrompt,
	}
}

// FromEnv overlays environment values onto cfg. lookup is usually os.Getenv.
// The API key is not validated here; a missing key surfaces on the first request.
func FromEnv(cfg Config, lookup func(string) string) Config {
	get := func(key string) string {
		return strings.TrimSpace(lookup(key))
	}

	if v := get("OPENAI_API_KEY"); v != "" {
		cfg.APIKey = v
	} else if v := get("GOOGLE_API_KEY"); v != "" {
		cfg.APIKey = v
		cfg.BaseURL = GeminiBaseURL
	}
	if v := get("OPENAI_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := get("OPENAI_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := get("CHAT_SYSTEM_PROMPT"); v != "" {
		cfg.SystemPrompt = v
	}
	return cfg
}

// Normalize sanitizes configuration values and applies defaults.
// An unset model defaults by endpoint: GeminiModel for GeminiBaseURL, DefaultModel otherwise.
func Normalize(cfg Config) Config {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.Model == "" {
		if cfg.BaseURL == GeminiBaseURL {
			cfg.Model = GeminiModel
		} else {
			cfg.Model = DefaultModel
		}
	}
	if strings.TrimSpace(cfg.SystemPrompt) == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}
	return cfg
}

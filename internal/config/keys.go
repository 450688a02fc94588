// Package config provides API key management utilities.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoAPIKey is returned when no API key is configured.
var ErrNoAPIKey = errors.New("no API key configured")

// GetAPIKey returns the Anthropic API key from the configuration.
// It checks in order: environment variable, config file.
func GetAPIKey(cfg *Config) (string, error) {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return key, nil
	}
	if cfg != nil {
		if key, ok := resolved(cfg.AI.APIKey); ok {
			return key, nil
		}
	}
	return "", ErrNoAPIKey
}

// GetOpenAIKey returns the OpenAI API key from the configuration.
func GetOpenAIKey(cfg *Config) (string, error) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key, nil
	}
	if cfg != nil {
		if key, ok := resolved(cfg.AI.OpenAI.APIKey); ok {
			return key, nil
		}
	}
	return "", ErrNoAPIKey
}

// resolved expands any remaining env var references and reports whether a
// usable key is left.
func resolved(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	key := os.ExpandEnv(raw)
	if key == "" || strings.HasPrefix(key, "${") {
		return "", false
	}
	return key, true
}

// ValidateProvider checks that the configured AI provider is known.
func ValidateProvider(provider string) error {
	switch provider {
	case ProviderAnthropic, ProviderBedrock, ProviderOpenAI, ProviderNone, "":
		return nil
	default:
		return fmt.Errorf("unknown ai provider %q", provider)
	}
}

// ValidateAPIKey performs basic validation on an Anthropic API key.
// It checks format but does not verify the key with Anthropic's API.
func ValidateAPIKey(key string) error {
	if key == "" {
		return ErrNoAPIKey
	}

	// Anthropic API keys start with "sk-ant-"
	if !strings.HasPrefix(key, "sk-ant-") {
		return errors.New("invalid API key format: expected 'sk-ant-' prefix")
	}

	if len(key) < 20 {
		return errors.New("invalid API key format: key too short")
	}

	return nil
}

// MaskAPIKey returns a masked version of the API key for display.
// Shows the first 7 characters and last 4 characters.
func MaskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}

	if len(key) <= 15 {
		return "***"
	}

	return key[:7] + "..." + key[len(key)-4:]
}

// KeySource represents where an API key was loaded from.
type KeySource string

const (
	KeySourceEnv    KeySource = "environment"
	KeySourceConfig KeySource = "config_file"
	KeySourceNone   KeySource = "none"
)

// GetAPIKeySource returns where the key for the configured provider was
// sourced from. Bedrock uses AWS credentials and reports none.
func GetAPIKeySource(cfg *Config) KeySource {
	envVar, raw := "ANTHROPIC_API_KEY", ""
	if cfg != nil {
		raw = cfg.AI.APIKey
		if cfg.AI.Provider == ProviderOpenAI {
			envVar, raw = "OPENAI_API_KEY", cfg.AI.OpenAI.APIKey
		}
	}

	if os.Getenv(envVar) != "" {
		return KeySourceEnv
	}
	if _, ok := resolved(raw); ok {
		return KeySourceConfig
	}
	return KeySourceNone
}

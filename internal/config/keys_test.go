package config

import (
	"testing"
)

func TestGetAPIKey(t *testing.T) {
	t.Run("from environment variable", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test-key")

		key, err := GetAPIKey(&Config{})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if key != "sk-ant-test-key" {
			t.Errorf("expected 'sk-ant-test-key', got %q", key)
		}
	})

	t.Run("from config", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "")

		cfg := &Config{AI: AIConfig{APIKey: "sk-ant-config-key"}}
		key, err := GetAPIKey(cfg)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if key != "sk-ant-config-key" {
			t.Errorf("expected 'sk-ant-config-key', got %q", key)
		}
	})

	t.Run("unresolved reference", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "")

		cfg := &Config{AI: AIConfig{APIKey: "${JRNY_MISSING_KEY}"}}
		if _, err := GetAPIKey(cfg); err != ErrNoAPIKey {
			t.Errorf("expected ErrNoAPIKey, got %v", err)
		}
	})

	t.Run("no key configured", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "")

		if _, err := GetAPIKey(&Config{}); err != ErrNoAPIKey {
			t.Errorf("expected ErrNoAPIKey, got %v", err)
		}
	})
}

func TestGetOpenAIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg := &Config{AI: AIConfig{OpenAI: OpenAIConfig{APIKey: "sk-openai"}}}
	key, err := GetOpenAIKey(cfg)
	if err != nil || key != "sk-openai" {
		t.Errorf("GetOpenAIKey() = %q, %v", key, err)
	}

	t.Setenv("OPENAI_API_KEY", "sk-env")
	if key, _ := GetOpenAIKey(cfg); key != "sk-env" {
		t.Errorf("expected env key to win, got %q", key)
	}
}

func TestValidateProvider(t *testing.T) {
	for _, p := range []string{"anthropic", "bedrock", "openai", "none", ""} {
		if err := ValidateProvider(p); err != nil {
			t.Errorf("ValidateProvider(%q) = %v", p, err)
		}
	}
	if err := ValidateProvider("gemini"); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"valid key", "sk-ant-REDACTED", false},
		{"empty key", "", true},
		{"wrong prefix", "sk-openai-12345678901234567890", true},
		{"too short", "sk-ant-abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAPIKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAPIKey() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{"valid key", "sk-ant-REDACTED", "sk-ant-...wxyz"},
		{"empty key", "", "(not set)"},
		{"short key", "short", "***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MaskAPIKey(tt.key)
			if result != tt.expected {
				t.Errorf("MaskAPIKey() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestGetAPIKeySource(t *testing.T) {
	t.Run("from environment", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "test-key")

		if source := GetAPIKeySource(&Config{}); source != KeySourceEnv {
			t.Errorf("expected KeySourceEnv, got %v", source)
		}
	})

	t.Run("from config", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "")

		cfg := &Config{AI: AIConfig{APIKey: "sk-ant-config-key"}}
		if source := GetAPIKeySource(cfg); source != KeySourceConfig {
			t.Errorf("expected KeySourceConfig, got %v", source)
		}
	})

	t.Run("openai provider", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "ignored")
		t.Setenv("OPENAI_API_KEY", "")

		cfg := &Config{AI: AIConfig{Provider: ProviderOpenAI}}
		if source := GetAPIKeySource(cfg); source != KeySourceNone {
			t.Errorf("expected KeySourceNone, got %v", source)
		}
	})

	t.Run("no key", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "")

		if source := GetAPIKeySource(&Config{}); source != KeySourceNone {
			t.Errorf("expected KeySourceNone, got %v", source)
		}
	})
}

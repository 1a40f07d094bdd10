package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.LLM.Provider != "claude" {
		t.Errorf("LLM.Provider = %q, want claude", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "claude-3-haiku-20240307" {
		t.Errorf("LLM.Model = %q", cfg.LLM.Model)
	}
	if cfg.LLM.Timeout != 60*time.Second {
		t.Errorf("LLM.Timeout = %v, want 60s", cfg.LLM.Timeout)
	}
	if cfg.Database.Path != "data/talentboard.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Redis.CacheTTL != 5*time.Minute {
		t.Errorf("Redis.CacheTTL = %v, want 5m", cfg.Redis.CacheTTL)
	}
	if cfg.RateLimit.AnalyzePerMinute != 30 {
		t.Errorf("RateLimit.AnalyzePerMinute = %d, want 30", cfg.RateLimit.AnalyzePerMinute)
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	content := `
server:
  port: 9090
llm:
  model: claude-3-5-sonnet-latest
  max_tokens: 2048
database:
  path: /tmp/test.db
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.LLM.Model != "claude-3-5-sonnet-latest" {
		t.Errorf("LLM.Model = %q", cfg.LLM.Model)
	}
	if cfg.LLM.MaxTokens != 2048 {
		t.Errorf("LLM.MaxTokens = %d, want 2048", cfg.LLM.MaxTokens)
	}
	// Values not in the file keep their defaults.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want default", cfg.Server.Host)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("LLM_API_KEY", "test-key")
	t.Setenv("LLM_TIMEOUT", "90s")
	t.Setenv("DATABASE_PATH", "/tmp/override.db")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.LLM.APIKey != "test-key" {
		t.Errorf("LLM.APIKey = %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.Timeout != 90*time.Second {
		t.Errorf("LLM.Timeout = %v, want 90s", cfg.LLM.Timeout)
	}
	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_EXPAND_KEY", "secret")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"braced form", "api_key: ${TEST_EXPAND_KEY}", "api_key: secret"},
		{"bare form", "api_key: $TEST_EXPAND_KEY", "api_key: secret"},
		{"unset var kept literal", "api_key: ${TEST_EXPAND_UNSET}", "api_key: ${TEST_EXPAND_UNSET}"},
		{"no vars", "port: 8080", "port: 8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandEnvVars(tt.input); got != tt.expected {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

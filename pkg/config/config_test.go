package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Server.DefaultPageSize != 5 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.LLM.Provider != "ollama" || cfg.LLM.Model != "llama3.2" {
		t.Errorf("llm = %+v", cfg.LLM)
	}
	if cfg.Database.Path != "meetings.db" {
		t.Errorf("database path = %q", cfg.Database.Path)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("Load() = nil error for a missing config file")
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := `
server:
  port: "9000"
  default_page_size: 10
database:
  path: /tmp/from-file.db
llm:
  model: mistral
  timeout: 45s
cache:
  driver: redis
  ttl: 2m
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("LLM_MODEL", "llama3.1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9100" {
		t.Errorf("port = %q, want env value 9100", cfg.Server.Port)
	}
	if cfg.Server.DefaultPageSize != 10 {
		t.Errorf("page size = %d, want file value 10", cfg.Server.DefaultPageSize)
	}
	if cfg.LLM.Model != "llama3.1" {
		t.Errorf("model = %q, want env value", cfg.LLM.Model)
	}
	if cfg.LLM.Timeout != 45*time.Second {
		t.Errorf("timeout = %v", cfg.LLM.Timeout)
	}
	if cfg.Cache.Driver != "redis" || cfg.Cache.TTL != 2*time.Minute {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.LLM.BaseURL != "http://localhost:11434" {
		t.Errorf("base url = %q, want default", cfg.LLM.BaseURL)
	}
}

func TestLoadUnprefixedServerVariables(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "7000")
	t.Setenv("ENVIRONMENT", "production")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "7000" || cfg.IsDevelopment() {
		t.Errorf("server = %+v", cfg.Server)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown provider", func(c *Config) { c.LLM.Provider = "gpt" }},
		{"groq without key", func(c *Config) { c.LLM.Provider = "groq" }},
		{"empty db path", func(c *Config) { c.Database.Path = "" }},
		{"bad cache driver", func(c *Config) { c.Cache.Driver = "memcached" }},
		{"zero page size", func(c *Config) { c.Server.DefaultPageSize = 0 }},
		{"storage without bucket", func(c *Config) { c.Storage.Enabled = true; c.Storage.BucketName = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestGetRedisAddr(t *testing.T) {
	cfg := Default()
	if got := cfg.GetRedisAddr(); got != "localhost:6379" {
		t.Errorf("GetRedisAddr = %q", got)
	}
}

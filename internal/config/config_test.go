package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromPathReadsAllSections(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, ".wordgen.yaml")
	content := `ai:
  provider: "openai"
  api_key: "sk-test"
  model: "gpt-4o-mini"
image_search:
  enabled: true
  type: "google_cse"
  api_key: "google-key"
  cse_id: "cse-123"
output:
  dir: "/tmp/docs"
  format: "markdown"
server:
  port: 9090
logging:
  level: "debug"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromPath(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AI.Provider != "openai" || cfg.AI.APIKey != "sk-test" || cfg.AI.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected ai section: %#v", cfg.AI)
	}
	if !cfg.ImageSearch.Enabled || cfg.ImageSearch.CSEID != "cse-123" {
		t.Fatalf("unexpected image_search section: %#v", cfg.ImageSearch)
	}
	if cfg.Output.Dir != "/tmp/docs" || cfg.Output.Format != "markdown" {
		t.Fatalf("unexpected output section: %#v", cfg.Output)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("unexpected port: %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected log level: %q", cfg.Logging.Level)
	}
}

func TestLoadFromPathMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AI.Provider != "groq" {
		t.Fatalf("expected default provider groq, got %q", cfg.AI.Provider)
	}
	if cfg.Output.Format != "html" {
		t.Fatalf("expected default format html, got %q", cfg.Output.Format)
	}
	if cfg.Server.Port != 8686 {
		t.Fatalf("expected default port 8686, got %d", cfg.Server.Port)
	}
}

func TestConfigRoundTripsThroughSaveAndLoad(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), ".wordgen.yaml")

	cfg := DefaultConfig()
	cfg.AI.Provider = "anthropic"
	cfg.AI.APIKey = "sk-roundtrip"
	cfg.ImageSearch.Enabled = true
	cfg.ImageSearch.APIKey = "g-key"
	cfg.ImageSearch.CSEID = "cse"
	cfg.Output.Format = "markdown"
	cfg.Server.Port = 7777

	if err := cfg.SaveToPath(cfgPath); err != nil {
		t.Fatalf("save config: %v", err)
	}
	loaded, err := LoadFromPath(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if loaded.AI.Provider != "anthropic" || loaded.AI.APIKey != "sk-roundtrip" {
		t.Fatalf("ai section did not round-trip: %#v", loaded.AI)
	}
	if !loaded.ImageSearch.Enabled || loaded.ImageSearch.CSEID != "cse" {
		t.Fatalf("image_search section did not round-trip: %#v", loaded.ImageSearch)
	}
	if loaded.Output.Format != "markdown" || loaded.Server.Port != 7777 {
		t.Fatalf("output/server sections did not round-trip: %#v %#v", loaded.Output, loaded.Server)
	}
}

func TestApplyEnvFillsCredentials(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "groq-env")
	t.Setenv("GOOGLE_API_KEY", "g-env")
	t.Setenv("GOOGLE_CSE_ID", "cse-env")

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AI.APIKey != "groq-env" {
		t.Fatalf("expected env groq key, got %q", cfg.AI.APIKey)
	}
	if !cfg.ImageSearch.Enabled {
		t.Fatalf("expected image search auto-enabled when credentials present")
	}
}

func TestApplyEnvMatchesProviderKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "groq-env")
	t.Setenv("GEMINI_API_KEY", "gemini-env")
	t.Setenv("ANTHROPIC_API_KEY", "anthropic-env")

	cases := map[string]string{
		"gemini":    "gemini-env",
		"anthropic": "anthropic-env",
		"groq":      "groq-env",
	}
	for provider, want := range cases {
		tmp := t.TempDir()
		cfgPath := filepath.Join(tmp, ".wordgen.yaml")
		content := "ai:\n  provider: \"" + provider + "\"\n"
		if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		cfg, err := LoadFromPath(cfgPath)
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.AI.APIKey != want {
			t.Fatalf("provider %s: expected key %q, got %q", provider, want, cfg.AI.APIKey)
		}
	}
}

func TestApplyEnvDoesNotOverrideFileValues(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "env-key")
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, ".wordgen.yaml")
	content := "ai:\n  provider: \"groq\"\n  api_key: \"file-key\"\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromPath(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AI.APIKey != "file-key" {
		t.Fatalf("file key should win over env, got %q", cfg.AI.APIKey)
	}
}

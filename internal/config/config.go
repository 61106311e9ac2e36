package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	exeDirCache string
)

// getExecutableDir returns the directory where the executable is located
func getExecutableDir() string {
	if exeDirCache != "" {
		return exeDirCache
	}
	execPath, err := os.Executable()
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	exeDirCache = filepath.Dir(execPath)
	return exeDirCache
}

type Config struct {
	AI          AIConfig          `yaml:"ai"`
	ImageSearch ImageSearchConfig `yaml:"image_search,omitempty"`
	Output      OutputConfig      `yaml:"output,omitempty"`
	Server      ServerConfig      `yaml:"server,omitempty"`
	Logging     LoggingConfig     `yaml:"logging,omitempty"`
}

// AIConfig selects the text-generation provider.
type AIConfig struct {
	Provider string `yaml:"provider,omitempty"` // "groq", "openai", "anthropic", ...
	APIKey   string `yaml:"api_key,omitempty"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model,omitempty"`
}

// ImageSearchConfig configures the optional image capability. When disabled
// or missing credentials, the pipeline runs with a no-op engine.
type ImageSearchConfig struct {
	Enabled bool   `yaml:"enabled"`
	Type    string `yaml:"type,omitempty"` // defaults to "google_cse"
	APIKey  string `yaml:"api_key,omitempty"`
	CSEID   string `yaml:"cse_id,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
}

type OutputConfig struct {
	Dir    string `yaml:"dir,omitempty"`
	Format string `yaml:"format,omitempty"` // "html" or "markdown"
}

type ServerConfig struct {
	Port int `yaml:"port,omitempty"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		AI: AIConfig{
			Provider: "groq",
		},
		ImageSearch: ImageSearchConfig{
			Type: "google_cse",
		},
		Output: OutputConfig{
			Dir:    ".",
			Format: "html",
		},
		Server: ServerConfig{
			Port: 8686,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func ConfigPath() string {
	exeDir := getExecutableDir()
	return filepath.Join(exeDir, ".wordgen.yaml")
}

func Load() (*Config, error) {
	return LoadFromPath(ConfigPath())
}

func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) Save() error {
	return c.SaveToPath(ConfigPath())
}

func (c *Config) SaveToPath(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// applyEnv fills credentials from the environment when the file leaves them
// blank. Environment never overrides an explicit file value.
func (c *Config) applyEnv() {
	if c.AI.APIKey == "" {
		switch c.AI.Provider {
		case "anthropic", "claude":
			c.AI.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "openai":
			c.AI.APIKey = os.Getenv("OPENAI_API_KEY")
		case "gemini":
			c.AI.APIKey = os.Getenv("GEMINI_API_KEY")
		default:
			c.AI.APIKey = os.Getenv("GROQ_API_KEY")
		}
	}
	if c.ImageSearch.APIKey == "" {
		c.ImageSearch.APIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if c.ImageSearch.CSEID == "" {
		c.ImageSearch.CSEID = os.Getenv("GOOGLE_CSE_ID")
	}
	if !c.ImageSearch.Enabled && c.ImageSearch.APIKey != "" && c.ImageSearch.CSEID != "" {
		c.ImageSearch.Enabled = true
	}
}

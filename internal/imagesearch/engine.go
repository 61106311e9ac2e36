// Package imagesearch is the image-search capability: engines return ranked
// candidate image locators for a topical query. A no-op engine stands in when
// the capability is unconfigured, so callers never branch on configuration.
package imagesearch

import "context"

// Capability is the name used in warnings and the recovery gate.
const Capability = "imagesearch"

// Candidate is one ranked image locator.
type Candidate struct {
	URL   string
	Title string
}

// Engine abstracts an image-search backend.
type Engine interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]Candidate, error)
}

// EngineConfig configures one engine instance.
type EngineConfig struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	APIKey  string `yaml:"api_key,omitempty"`
	CSEID   string `yaml:"cse_id,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	Enabled bool   `yaml:"enabled"`
}

// EngineFactory builds an engine from its config.
type EngineFactory func(config EngineConfig) (Engine, error)

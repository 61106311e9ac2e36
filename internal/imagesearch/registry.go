package imagesearch

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

type Registry struct {
	factories map[string]EngineFactory
	mu        sync.RWMutex
}

func NewRegistry() *Registry {
	r := &Registry{
		factories: make(map[string]EngineFactory),
	}

	r.Register("google_cse", NewGoogleCSEEngine)
	r.Register("noop", NewNoopEngine)

	return r
}

func (r *Registry) Register(engineType string, factory EngineFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[engineType] = factory
}

func (r *Registry) CreateEngine(config EngineConfig) (Engine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[config.Type]
	if !ok {
		return nil, fmt.Errorf("unknown engine type %q (available: %s)",
			config.Type, strings.Join(r.listTypesLocked(), ", "))
	}

	return factory(config)
}

func (r *Registry) ListTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listTypesLocked()
}

func (r *Registry) listTypesLocked() []string {
	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

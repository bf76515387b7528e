package template

import (
	"log/slog"
	"sync"
)

// Origin records which ranked source a registration came from.
type Origin string

const (
	OriginPrimary  Origin = "primary"
	OriginFallback Origin = "fallback"
)

// Registration is one active registry entry: at most one per key.
type Registration struct {
	Key      string
	Template Template
	Origin   Origin
}

// Registry builds and caches the mapping of available templates from its
// ranked sources. Discovery is primary-first: a later source's entry whose
// key already exists is skipped entirely. Registration order is stable and
// observable; the selector's tie-break depends on it.
//
// Refresh atomically replaces the whole snapshot, so a reader racing a
// refresh sees either the old or the new complete mapping, never a partial
// one.
type Registry struct {
	logger  *slog.Logger
	sources []Source

	mu      sync.RWMutex
	entries []Registration
	byKey   map[string]int
	loaded  bool
}

// NewRegistry wires a registry over sources in priority order. The first
// source is the primary; all later sources are fallbacks.
func NewRegistry(logger *slog.Logger, sources ...Source) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{logger: logger, sources: sources}
}

// Refresh clears and rebuilds the full registry. Safe to call at any time;
// in-flight readers keep whichever snapshot they already looked up.
func (r *Registry) Refresh() {
	entries, byKey := r.discover()
	r.mu.Lock()
	r.entries = entries
	r.byKey = byKey
	r.loaded = true
	r.mu.Unlock()
}

// All returns the active registrations in stable registration order,
// lazily triggering discovery on first use.
func (r *Registry) All() []Registration {
	r.mu.RLock()
	if r.loaded {
		out := make([]Registration, len(r.entries))
		copy(out, r.entries)
		r.mu.RUnlock()
		return out
	}
	r.mu.RUnlock()

	r.Refresh()

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Registration, len(r.entries))
	copy(out, r.entries)
	return out
}

// Get returns the active template for a key.
func (r *Registry) Get(key string) (Template, bool) {
	for _, reg := range r.All() {
		if reg.Key == key {
			return reg.Template, true
		}
	}
	return nil, false
}

func (r *Registry) discover() ([]Registration, map[string]int) {
	var entries []Registration
	byKey := map[string]int{}

	for i, src := range r.sources {
		origin := OriginPrimary
		if i > 0 {
			origin = OriginFallback
		}
		loaded, err := src.Load()
		if err != nil {
			// Partial-failure tolerant: a broken source never blocks the rest.
			r.logger.Warn("registry.source.failed", "source", src.Name(), "err", err)
			continue
		}
		for _, e := range loaded {
			if e.Key == "" || e.Template == nil {
				r.logger.Warn("registry.entry.skipped", "source", src.Name(), "reason", "empty key or nil template")
				continue
			}
			if _, exists := byKey[e.Key]; exists {
				r.logger.Info("registry.entry.shadowed", "source", src.Name(), "key", e.Key)
				continue
			}
			byKey[e.Key] = len(entries)
			entries = append(entries, Registration{Key: e.Key, Template: e.Template, Origin: origin})
		}
	}

	r.logger.Info("registry.loaded", "templates", len(entries))
	return entries, byKey
}

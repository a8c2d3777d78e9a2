package persona

import (
	"sort"
	"strings"
	"sync"
)

// Registry maps persona identifiers to personas. Entries are only ever added.
type Registry struct {
	mu       sync.RWMutex
	personas map[string]Persona
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		personas: make(map[string]Persona),
	}
}

// Register adds or replaces the persona stored under id
func (r *Registry) Register(id string, cfg Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.personas[normalizeID(id)] = New(cfg)
}

// Lookup resolves id. On a miss it returns the default persona and false.
func (r *Registry) Lookup(id string) (Persona, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.personas[normalizeID(id)]
	if !ok {
		return Default(), false
	}
	return p, true
}

// IDs returns the registered identifiers in sorted order
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.personas))
	for id := range r.personas {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered personas
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.personas)
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

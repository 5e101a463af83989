package gradetable

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownPolicy is returned by Lookup for names nobody registered.
var ErrUnknownPolicy = errors.New("unknown grading policy")

// Registry holds the grading policies available to a run, keyed by name.
type Registry struct {
	policies map[string]*Policy
}

// NewRegistry returns a registry preloaded with the built-in policies.
func NewRegistry() *Registry {
	r := &Registry{policies: map[string]*Policy{}}
	for _, p := range []*Policy{cuiPolicy(), standardPolicy()} {
		r.policies[p.Name()] = p
	}
	return r
}

// Register adds a policy. Names are case-insensitive and must be unique.
func (r *Registry) Register(p *Policy) error {
	key := strings.ToLower(p.Name())
	if _, exists := r.policies[key]; exists {
		return &ConfigurationError{Policy: p.Name(), Band: -1, Reason: "a policy with this name is already registered"}
	}
	r.policies[key] = p
	return nil
}

// Lookup returns the named policy.
func (r *Registry) Lookup(name string) (*Policy, error) {
	p, ok := r.policies[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownPolicy, name, strings.Join(r.Names(), ", "))
	}
	return p, nil
}

// Names returns the registered policy names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.policies))
	for n := range r.policies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Policies returns every registered policy sorted by name.
func (r *Registry) Policies() []*Policy {
	out := make([]*Policy, 0, len(r.policies))
	for _, n := range r.Names() {
		out = append(out, r.policies[n])
	}
	return out
}

package method

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Errors returned when resolving method names.
var (
	ErrUnknownMethod      = errors.New("unknown method")
	ErrNoMethods          = errors.New("no method selected")
	ErrConflictingMethods = errors.New("methods cannot be combined")
)

// Registry holds all registered methods. Lookups are case-insensitive.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Method
	aliases map[string]string // alias -> canonical name
}

// NewRegistry creates an empty method registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]Method),
		aliases: make(map[string]string),
	}
}

// Register adds a method and its aliases to the registry.
// If a method with the same name already exists, it is replaced.
func (r *Registry) Register(m Method) {
	r.mu.Lock()
	defer r.mu.Unlock()

	info := m.Info()
	name := strings.ToLower(info.Name)
	r.byName[name] = m
	for _, alias := range info.Aliases {
		r.aliases[strings.ToLower(alias)] = name
	}
}

// RegisterAlias maps an alias to a canonical method name.
func (r *Registry) RegisterAlias(alias, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[strings.ToLower(alias)] = strings.ToLower(name)
}

// Get retrieves a method by name or alias.
func (r *Registry) Get(key string) (Method, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key = strings.ToLower(strings.TrimSpace(key))
	if m, ok := r.byName[key]; ok {
		return m, true
	}
	if name, ok := r.aliases[key]; ok {
		m, ok := r.byName[name]
		return m, ok
	}
	return nil, false
}

// Resolve looks up every key and returns the methods arranged for a run.
// Unknown keys are reported together.
func (r *Registry) Resolve(keys []string) ([]Method, error) {
	methods := make([]Method, 0, len(keys))
	var errs []error
	for _, key := range keys {
		m, ok := r.Get(key)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownMethod, key))
			continue
		}
		methods = append(methods, m)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return Arrange(methods)
}

// Methods returns all registered methods sorted by name.
func (r *Registry) Methods() []Method {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Method, 0, len(r.byName))
	for _, m := range r.byName {
		result = append(result, m)
	}

	slices.SortFunc(result, func(a, b Method) int {
		return cmp.Compare(a.Info().Name, b.Info().Name)
	})

	return result
}

// Names returns all registered method names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byName))
	for _, m := range r.byName {
		result = append(result, m.Info().Name)
	}

	slices.Sort(result)
	return result
}

// Arrange drops repeated methods and sorts the rest into the order they
// run at each node. An exclusive method must be the only one.
func Arrange(methods []Method) ([]Method, error) {
	if len(methods) == 0 {
		return nil, ErrNoMethods
	}

	seen := make(map[string]bool, len(methods))
	out := make([]Method, 0, len(methods))
	for _, m := range methods {
		name := m.Info().Name
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, m)
	}

	if len(out) > 1 {
		for _, m := range out {
			if m.Info().Exclusive {
				return nil, fmt.Errorf("%w: %s must be used alone", ErrConflictingMethods, m.Info().Name)
			}
		}
	}

	slices.SortStableFunc(out, func(a, b Method) int {
		return cmp.Compare(a.Info().Order, b.Info().Order)
	})
	return out, nil
}

// DefaultRegistry is the global registry for built-in methods.
// Methods register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for method registration
var DefaultRegistry = NewRegistry()

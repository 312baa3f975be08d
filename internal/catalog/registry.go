package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
)

// Registry holds all operation descriptors indexed by unique name.
// Registration happens once at startup; afterwards the registry is immutable
// and safe for concurrent lookups.
type Registry struct {
	mu         sync.RWMutex
	ops        map[string]*Descriptor
	byCategory map[Category][]*Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		ops:        make(map[string]*Descriptor),
		byCategory: make(map[Category][]*Descriptor),
	}
}

// Register adds a descriptor. Registering an already-present name fails with
// ErrDuplicateName.
func (r *Registry) Register(d *Descriptor) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("invalid operation: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ops[d.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateName, d.Name)
	}
	if d.Category == "" {
		d.Category = CategoryGeneral
	}

	r.ops[d.Name] = d
	r.byCategory[d.Category] = append(r.byCategory[d.Category], d)
	return nil
}

// MustRegister registers a descriptor and panics on error. Used for the
// static catalog built at process start.
func (r *Registry) MustRegister(d *Descriptor) {
	if err := r.Register(d); err != nil {
		panic(fmt.Sprintf("failed to register operation %s: %v", d.Name, err))
	}
}

// Resolve returns the descriptor for name, or nil if absent.
func (r *Registry) Resolve(name string) *Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ops[name]
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	return r.Resolve(name) != nil
}

// ListByCategory returns the descriptors in a category, name-sorted.
func (r *Registry) ListByCategory(category Category) []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ops := make([]*Descriptor, len(r.byCategory[category]))
	copy(ops, r.byCategory[category])
	sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
	return ops
}

// Categories returns all non-empty categories, sorted.
func (r *Registry) Categories() []Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cats := make([]Category, 0, len(r.byCategory))
	for c := range r.byCategory {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

// Names returns all registered operation names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered operations.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ops)
}

// Match pairs a matched name with its descriptor.
type Match struct {
	Name       string
	Descriptor *Descriptor
}

// Search finds operations whose name or help text contains the query
// (case-insensitive). Substring hits come first in fuzzy-ranked order against
// the name; help-only hits follow alphabetically.
func (r *Registry) Search(query string) []Match {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	nameHits := make([]string, 0)
	helpHits := make([]string, 0)
	for name, d := range r.ops {
		switch {
		case strings.Contains(strings.ToLower(name), q):
			nameHits = append(nameHits, name)
		case strings.Contains(strings.ToLower(d.Help), q):
			helpHits = append(helpHits, name)
		}
	}

	// Rank name hits by fuzzy score so "sin" lists sin before asinh.
	ranked := fuzzy.Find(query, nameHits)
	ordered := make([]string, 0, len(nameHits))
	seen := make(map[string]bool, len(nameHits))
	for _, m := range ranked {
		ordered = append(ordered, m.Str)
		seen[m.Str] = true
	}
	sort.Strings(nameHits)
	for _, name := range nameHits {
		if !seen[name] {
			ordered = append(ordered, name)
		}
	}
	sort.Strings(helpHits)
	ordered = append(ordered, helpHits...)

	matches := make([]Match, len(ordered))
	for i, name := range ordered {
		matches[i] = Match{Name: name, Descriptor: r.ops[name]}
	}
	return matches
}

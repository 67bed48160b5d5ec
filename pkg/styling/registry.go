package styling

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// SheetFactory creates the stylesheet of a new theming scope
type SheetFactory func(scope string) Sheet

// Registry holds one RenderTarget per theming scope and serializes
// injection into each of them
type Registry struct {
	mu       sync.Mutex
	targets  map[string]*scopedTarget
	newSheet SheetFactory
	log      zerolog.Logger
}

type scopedTarget struct {
	mu     sync.Mutex
	target *RenderTarget
}

// RegistryOption configures a Registry
type RegistryOption func(*Registry)

// WithLogger sets the logger scope creation is reported to
func WithLogger(log zerolog.Logger) RegistryOption {
	return func(r *Registry) {
		r.log = log
	}
}

// NewRegistry creates a registry building sheets with newSheet.
// A nil factory uses MemorySheet.
func NewRegistry(newSheet SheetFactory, opts ...RegistryOption) *Registry {
	if newSheet == nil {
		newSheet = func(string) Sheet { return NewMemorySheet() }
	}

	r := &Registry{
		targets:  make(map[string]*scopedTarget),
		newSheet: newSheet,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) scope(name string) *scopedTarget {
	r.mu.Lock()
	defer r.mu.Unlock()

	if st, ok := r.targets[name]; ok {
		return st
	}

	st := &scopedTarget{target: NewRenderTarget(r.newSheet(name))}
	r.targets[name] = st
	r.log.Debug().Str("scope", name).Msg("created render target")
	return st
}

// Target returns the target of a scope, creating it on first use.
// Callers mutating it directly must not race with Insert.
func (r *Registry) Target(scope string) *RenderTarget {
	return r.scope(scope).target
}

// Insert runs InsertStyles against the scope's target while holding
// the scope lock
func (r *Registry) Insert(scope string, definitions DefinitionSet, rtl bool) (string, error) {
	st := r.scope(scope)

	st.mu.Lock()
	defer st.mu.Unlock()
	return InsertStyles(definitions, rtl, st.target)
}

// ClassName runs a StylesHook against the scope's target while holding
// the scope lock
func (r *Registry) ClassName(scope string, hook *StylesHook, rtl bool, state map[string]bool, staticClass string, extra ...string) (string, error) {
	st := r.scope(scope)

	st.mu.Lock()
	defer st.mu.Unlock()
	return hook.ClassName(st.target, rtl, state, staticClass, extra...)
}

// Scopes returns the names of all scopes, sorted
func (r *Registry) Scopes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	scopes := make([]string, 0, len(r.targets))
	for name := range r.targets {
		scopes = append(scopes, name)
	}
	sort.Strings(scopes)
	return scopes
}

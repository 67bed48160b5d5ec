package styling

import (
	"sort"
	"strings"
	"sync"
)

// Selectors gate a Rule on component state, e.g. {"avatar": true}.
// A nil or empty Selectors always matches.
type Selectors map[string]bool

// Matches reports whether every selector equals the state value.
// Keys missing from state read as false.
func (s Selectors) Matches(state map[string]bool) bool {
	for key, want := range s {
		if state[key] != want {
			return false
		}
	}
	return true
}

// Rule is a group of definitions applied when its selectors match
type Rule struct {
	When        Selectors     `json:"when" yaml:"when"`
	Definitions DefinitionSet `json:"definitions" yaml:"definitions"`
}

// StylesHook resolves component state to class names.
// Merged definition sets are memoized per state.
type StylesHook struct {
	rules []Rule

	mu   sync.Mutex
	memo map[string]DefinitionSet
}

// MakeStyles creates a hook over an ordered rule table
func MakeStyles(rules []Rule) *StylesHook {
	return &StylesHook{
		rules: rules,
		memo:  make(map[string]DefinitionSet),
	}
}

// Definitions returns the merged definitions for a state.
// Later rules override earlier ones property by property.
func (h *StylesHook) Definitions(state map[string]bool) DefinitionSet {
	key := stateKey(h.rules, state)

	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.memo[key]; ok {
		return set
	}

	var set DefinitionSet
	for _, rule := range h.rules {
		if rule.When.Matches(state) {
			set = set.Merge(rule.Definitions)
		}
	}
	h.memo[key] = set
	return set
}

// ClassName injects the rules matching state into target and returns the
// class attribute: staticClass, then the atomic classes, then any extra
// classes, separated by single spaces
func (h *StylesHook) ClassName(target *RenderTarget, rtl bool, state map[string]bool, staticClass string, extra ...string) (string, error) {
	atomic, err := InsertStyles(h.Definitions(state), rtl, target)
	if err != nil {
		return "", err
	}
	return JoinClasses(append([]string{staticClass, atomic}, extra...)...), nil
}

// JoinClasses joins class lists with single spaces, dropping blanks
func JoinClasses(classes ...string) string {
	var fields []string
	for _, class := range classes {
		fields = append(fields, strings.Fields(class)...)
	}
	return strings.Join(fields, " ")
}

// stateKey reduces state to the selector keys the rules look at, so
// unrelated props share a memo entry
func stateKey(rules []Rule, state map[string]bool) string {
	seen := make(map[string]bool)
	var keys []string
	for _, rule := range rules {
		for key := range rule.When {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		if state[key] {
			b.WriteString(key)
			b.WriteByte(';')
		}
	}
	return b.String()
}

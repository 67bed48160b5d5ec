package styling

import "strings"

// CacheEntry records which property first inserted a class and the
// definition it came from
type CacheEntry struct {
	Property   string
	Definition Definition
}

// RenderTarget is the destination rules are injected into.
// One target is created per theming scope and owned by the caller; it
// lives as long as its stylesheet. A RenderTarget is not safe for
// concurrent use, see Registry for serialized access.
type RenderTarget struct {
	// Cache maps every injected class name to its origin.
	// Entries are never removed.
	Cache map[string]CacheEntry

	// Sheet receives the rules
	Sheet Sheet

	// Index is the position the next rule is inserted at
	Index int
}

// NewRenderTarget creates a target with an empty cache writing to sheet
func NewRenderTarget(sheet Sheet) *RenderTarget {
	return &RenderTarget{
		Cache: make(map[string]CacheEntry),
		Sheet: sheet,
	}
}

// Has reports whether a class has already been injected
func (t *RenderTarget) Has(className string) bool {
	_, ok := t.Cache[className]
	return ok
}

// Len returns the number of injected classes
func (t *RenderTarget) Len() int {
	return len(t.Cache)
}

// InsertStyles makes sure every rule of definitions is present in the
// target's stylesheet and returns the classes to apply, each preceded by a
// space (the result starts with a space when definitions is not empty).
//
// With rtl set, definitions carrying an RTL variant use it and their class
// name is prefixed with "r". A class already in the cache is never
// inserted again. A stylesheet error is returned as is; entries processed
// before it stay injected.
func InsertStyles(definitions DefinitionSet, rtl bool, target *RenderTarget) (string, error) {
	if target.Cache == nil {
		target.Cache = make(map[string]CacheEntry)
	}

	var classes strings.Builder
	for _, entry := range definitions {
		def := entry.Definition
		className := def.ClassFor(rtl)

		classes.WriteByte(' ')
		classes.WriteString(className)

		if _, ok := target.Cache[className]; ok {
			continue
		}

		target.Cache[className] = CacheEntry{Property: entry.Property, Definition: def}

		if _, err := target.Sheet.InsertRule(def.CSSFor(rtl), target.Index); err != nil {
			return "", err
		}
		target.Index++
	}

	return classes.String(), nil
}

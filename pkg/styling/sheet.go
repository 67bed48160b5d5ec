package styling

import (
	"fmt"
	"strings"
	"sync"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// Sheet is the rule-insertion primitive of a live stylesheet.
// It mirrors CSSStyleSheet.insertRule: the rule is placed at index and
// the index of the new rule is returned.
type Sheet interface {
	InsertRule(rule string, index int) (int, error)
}

// MemorySheet is an in-process stylesheet.
// It backs server-side rendering and tests, and rejects rules the way a
// browser does: one well-formed rule per call, at an index no greater than
// the current rule count.
type MemorySheet struct {
	mu      sync.RWMutex
	rules   []string
	inserts int
}

// NewMemorySheet creates an empty stylesheet
func NewMemorySheet() *MemorySheet {
	return &MemorySheet{}
}

// InsertRule validates and inserts a rule at index
func (s *MemorySheet) InsertRule(rule string, index int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index > len(s.rules) {
		return 0, &StylesheetError{
			Rule:  rule,
			Index: index,
			Err:   fmt.Errorf("%w: %d rules", ErrIndexSize, len(s.rules)),
		}
	}

	if err := validateRule(rule); err != nil {
		return 0, &StylesheetError{Rule: rule, Index: index, Err: err}
	}

	s.rules = append(s.rules, "")
	copy(s.rules[index+1:], s.rules[index:])
	s.rules[index] = rule
	s.inserts++

	return index, nil
}

// Rules returns a copy of the rules in sheet order
func (s *MemorySheet) Rules() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rules := make([]string, len(s.rules))
	copy(rules, s.rules)
	return rules
}

// Len returns the number of rules in the sheet
func (s *MemorySheet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rules)
}

// InsertCount returns how many rules were accepted by InsertRule
func (s *MemorySheet) InsertCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inserts
}

// String returns the sheet text, one rule per line
func (s *MemorySheet) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return strings.Join(s.rules, "\n")
}

// validateRule parses a single rule with douceur
func validateRule(rule string) error {
	text := strings.TrimSpace(rule)
	if text == "" {
		return fmt.Errorf("%w: empty rule", ErrSyntax)
	}

	// douceur is lenient about unterminated blocks
	if !strings.Contains(text, "{") || !strings.HasSuffix(text, "}") {
		return fmt.Errorf("%w: rule has no block", ErrSyntax)
	}

	sheet, err := parser.Parse(text)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	if len(sheet.Rules) != 1 {
		return fmt.Errorf("%w: expected one rule, got %d", ErrSyntax, len(sheet.Rules))
	}

	parsed := sheet.Rules[0]
	if parsed.Kind == css.QualifiedRule && strings.TrimSpace(parsed.Prelude) == "" {
		return fmt.Errorf("%w: rule has no selector", ErrSyntax)
	}
	return nil
}

package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/codewithboateng/stylint/internal/sym"
)

// DuplicateRuleError is a configuration fault raised at registry build
// time when two rules share an identifier.
type DuplicateRuleError struct {
	ID string
}

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("rules: duplicate rule id %q", e.ID)
}

type Settings struct {
	SeverityThreshold string
	Disabled          map[string]bool // UPPER(ruleID) -> true
}

func (s Settings) withDefaults() Settings {
	if s.SeverityThreshold == "" {
		s.SeverityThreshold = sym.SeverityInfo
	}
	if s.Disabled == nil {
		s.Disabled = map[string]bool{}
	}
	return s
}

// Registry is the ordered collection of active rules. It is constructed
// explicitly, passed by reference, and read-only after initialization, so
// it is safely shared across analysis workers.
type Registry struct {
	rules    []Rule
	index    map[string]int // UPPER(ruleID) -> position in rules
	settings Settings
}

func NewRegistry(s Settings) *Registry {
	return &Registry{
		index:    map[string]int{},
		settings: s.withDefaults(),
	}
}

// Default builds a registry holding every built-in rule.
func Default(s Settings) (*Registry, error) {
	reg := NewRegistry(s)
	for _, r := range Builtin() {
		if err := reg.Register(r); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Register adds a rule, preserving registration order for deterministic
// tie-breaking. Fails with *DuplicateRuleError on an ID collision.
func (g *Registry) Register(r Rule) error {
	key := strings.ToUpper(strings.TrimSpace(r.ID))
	if key == "" {
		return fmt.Errorf("rules: rule with empty id")
	}
	if _, ok := g.index[key]; ok {
		return &DuplicateRuleError{ID: r.ID}
	}
	g.rules = append(g.rules, r)
	g.index[key] = len(g.rules) - 1
	return nil
}

// Active returns the enabled rules that inspect the given node kind, in
// registration order.
func (g *Registry) Active(kind sym.Kind) []Rule {
	var out []Rule
	for _, r := range g.rules {
		if g.settings.Disabled[strings.ToUpper(r.ID)] {
			continue
		}
		if r.Applies(kind) {
			out = append(out, r)
		}
	}
	return out
}

// List returns every enabled rule sorted by ID, for inventory surfaces.
func (g *Registry) List() []Rule {
	out := make([]Rule, 0, len(g.rules))
	for _, r := range g.rules {
		if g.settings.Disabled[strings.ToUpper(r.ID)] {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns a rule by ID if registered, disabled or not.
func (g *Registry) Get(id string) (Rule, bool) {
	idx, ok := g.index[strings.ToUpper(strings.TrimSpace(id))]
	if !ok {
		return Rule{}, false
	}
	return g.rules[idx], true
}

func (g *Registry) SeverityThreshold() string { return g.settings.SeverityThreshold }

// SeverityOK reports whether a violation of the given severity clears the
// configured reporting threshold.
func (g *Registry) SeverityOK(sev string) bool {
	return sym.SeverityRank(sev) >= sym.SeverityRank(g.settings.SeverityThreshold)
}

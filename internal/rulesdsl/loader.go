package rulesdsl

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/codewithboateng/stylint/internal/rules"
	"github.com/codewithboateng/stylint/internal/sym"
)

type dslPack struct {
	Rules []dslRule `yaml:"rules"`
}

type dslRule struct {
	ID       string `yaml:"id"`
	Summary  string `yaml:"summary"`
	Severity string `yaml:"severity"` // ERROR|WARNING|INFO
	Kind     string `yaml:"kind"`     // node kind the rule inspects
	Message  string `yaml:"message"`

	Where struct {
		Name          string `yaml:"name"`           // regex on the declaration name (case-sensitive)
		HasModifier   string `yaml:"has_modifier"`   // declaration must carry this modifier (optional)
		LacksModifier string `yaml:"lacks_modifier"` // violation only when this modifier is absent (optional)
		TypeRegex     string `yaml:"type_regex"`     // regex on the declared type (optional)
	} `yaml:"where"`
}

type compiled struct {
	rule   dslRule
	kind   sym.Kind
	reName *regexp.Regexp
	reType *regexp.Regexp
	hasMod string
	noMod  string
}

// LoadAndRegister compiles a YAML rule pack and registers every rule into
// the registry. Returns the number registered.
func LoadAndRegister(path string, reg *rules.Registry) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read rule pack: %w", err)
	}
	var pack dslPack
	if err := yaml.Unmarshal(b, &pack); err != nil {
		return 0, fmt.Errorf("parse yaml: %w", err)
	}
	var n int
	for _, r := range pack.Rules {
		cr, err := compile(r)
		if err != nil {
			return n, fmt.Errorf("compile rule %q: %w", r.ID, err)
		}
		if err := reg.Register(cr.asRule()); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func compile(r dslRule) (*compiled, error) {
	if r.ID == "" || r.Severity == "" || r.Kind == "" || r.Message == "" {
		return nil, fmt.Errorf("missing required fields (id/severity/kind/message)")
	}
	kind := sym.Kind(strings.ToLower(strings.TrimSpace(r.Kind)))
	if !sym.ValidKind(kind) || kind == sym.KindUnit {
		return nil, fmt.Errorf("unknown kind %q", r.Kind)
	}
	c := &compiled{
		rule:   r,
		kind:   kind,
		hasMod: strings.TrimSpace(r.Where.HasModifier),
		noMod:  strings.TrimSpace(r.Where.LacksModifier),
	}
	if r.Where.Name != "" {
		re, err := regexp.Compile(r.Where.Name)
		if err != nil {
			return nil, fmt.Errorf("name regex: %w", err)
		}
		c.reName = re
	}
	if r.Where.TypeRegex != "" {
		re, err := regexp.Compile(r.Where.TypeRegex)
		if err != nil {
			return nil, fmt.Errorf("type_regex: %w", err)
		}
		c.reType = re
	}
	return c, nil
}

func (c *compiled) asRule() rules.Rule {
	sev := strings.ToUpper(strings.TrimSpace(c.rule.Severity))
	return rules.Rule{
		ID:       c.rule.ID,
		Summary:  c.rule.Summary,
		Severity: sev,
		Kinds:    []sym.Kind{c.kind},
		Eval: func(n *sym.Node) []sym.Violation {
			if c.hasMod != "" && !n.HasModifier(c.hasMod) {
				return nil
			}
			if c.noMod != "" && n.HasModifier(c.noMod) {
				return nil
			}
			if c.reName != nil && !c.reName.MatchString(n.Name) {
				return nil
			}
			if c.reType != nil && !c.reType.MatchString(n.Type) {
				return nil
			}
			return []sym.Violation{{
				RuleID:   c.rule.ID,
				Severity: sev,
				File:     n.File,
				Line:     n.Line,
				Symbol:   n.Path(),
				Message:  c.rule.Message,
				Evidence: evidenceFor(n, c),
			}}
		},
	}
}

func evidenceFor(n *sym.Node, c *compiled) string {
	parts := []string{string(n.Kind) + " " + n.Name}
	if c.hasMod != "" {
		parts = append(parts, "has "+c.hasMod)
	}
	if c.reType != nil && n.Type != "" {
		parts = append(parts, "type "+n.Type)
	}
	return strings.Join(parts, " | ")
}

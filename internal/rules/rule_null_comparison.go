package rules

import (
	"strings"

	"github.com/codewithboateng/stylint/internal/sym"
)

func ruleNoNullComparisonOnOptional() Rule {
	return Rule{
		ID:       "no-null-comparison-on-optional",
		Summary:  "Optional-typed fields expose a presence query; comparing them to a null literal bypasses it.",
		Severity: sym.SeverityWarning,
		Kinds:    []sym.Kind{sym.KindMethod},
		Eval:     evalNoNullComparisonOnOptional,
	}
}

func evalNoNullComparisonOnOptional(n *sym.Node) []sym.Violation {
	cls := enclosingClass(n)
	if cls == nil {
		return nil
	}
	var out []sym.Violation
	for _, name := range n.NullEquality {
		f := findField(cls, name)
		if f == nil || !isOptionalType(f.Type) {
			continue
		}
		out = append(out, violationAt(n,
			"no-null-comparison-on-optional", sym.SeverityWarning,
			"optional-typed field compared to a null literal; use its presence query instead.",
			name+" == null ("+f.Type+")",
		))
	}
	return out
}

func findField(cls *sym.Node, name string) *sym.Node {
	for _, c := range cls.Children {
		if c.Kind == sym.KindField && strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

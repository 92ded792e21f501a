package rules

import (
	"strings"

	"github.com/codewithboateng/stylint/internal/sym"
)

func ruleDbContextConstructorInjected() Rule {
	return Rule{
		ID:       "dbcontext-constructor-injected",
		Summary:  "A DbContext held in a field must arrive through a constructor parameter, never be newed up inline.",
		Severity: sym.SeverityWarning,
		Kinds:    []sym.Kind{sym.KindClass},
		Eval:     evalDbContextConstructorInjected,
	}
}

func evalDbContextConstructorInjected(n *sym.Node) []sym.Violation {
	var out []sym.Violation
	for _, f := range n.Children {
		if f.Kind != sym.KindField || !strings.Contains(f.Type, "DbContext") {
			continue
		}
		if hasCtorParamOfType(n, f.Type) {
			continue
		}
		out = append(out, violationAt(f,
			"dbcontext-constructor-injected", sym.SeverityWarning,
			"DbContext field has no matching constructor parameter; inject the context instead of constructing it.",
			f.Name+" "+f.Type,
		))
	}
	return out
}

func hasCtorParamOfType(cls *sym.Node, typ string) bool {
	for _, m := range cls.Children {
		if m.Kind != sym.KindMethod || !isConstructor(m) {
			continue
		}
		for _, p := range m.Children {
			if p.Kind == sym.KindParameter && strings.EqualFold(p.Type, typ) {
				return true
			}
		}
	}
	return false
}

package rules

import (
	"strings"

	"github.com/codewithboateng/stylint/internal/sym"
)

func ruleNoPartialDeclarations() Rule {
	return Rule{
		ID:       "no-partial-declarations",
		Summary:  "Partial type declarations scatter one type across files; keep each type in a single declaration.",
		Severity: sym.SeverityWarning,
		Kinds:    []sym.Kind{sym.KindClass},
		Eval:     evalNoPartialDeclarations,
	}
}

func evalNoPartialDeclarations(n *sym.Node) []sym.Violation {
	if !n.HasModifier("partial") {
		return nil
	}
	p := n.Parent()
	if p == nil {
		return nil
	}
	for _, sib := range p.Children {
		if sib == n || sib.Kind != sym.KindClass {
			continue
		}
		if strings.EqualFold(sib.Name, n.Name) && sib.HasModifier("partial") {
			return []sym.Violation{violationAt(n,
				"no-partial-declarations", sym.SeverityWarning,
				"type is split across partial declarations; merge it into a single declaration.",
				n.Name,
			)}
		}
	}
	return nil
}

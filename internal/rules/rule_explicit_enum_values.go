package rules

import (
	"strings"

	"github.com/codewithboateng/stylint/internal/sym"
)

func ruleExplicitEnumValues() Rule {
	return Rule{
		ID:       "explicit-enum-values",
		Summary:  "Enum members must declare an explicit value so reordering cannot shift persisted data.",
		Severity: sym.SeverityWarning,
		Kinds:    []sym.Kind{sym.KindEnumMember},
		Eval:     evalExplicitEnumValues,
	}
}

func evalExplicitEnumValues(n *sym.Node) []sym.Violation {
	if strings.TrimSpace(n.Value) != "" {
		return nil
	}
	evidence := n.Name
	if p := n.Parent(); p != nil && p.Kind == sym.KindEnum {
		evidence = p.Name + "." + n.Name
	}
	return []sym.Violation{violationAt(n,
		"explicit-enum-values", sym.SeverityWarning,
		"enum member has no explicit value; assign a stable integer literal.",
		evidence,
	)}
}

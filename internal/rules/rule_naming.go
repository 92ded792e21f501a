package rules

import (
	"strings"

	"github.com/codewithboateng/stylint/internal/sym"
)

func ruleClassPascalCase() Rule {
	return Rule{
		ID:       "class-pascal-case",
		Summary:  "Type names use PascalCase.",
		Severity: sym.SeverityWarning,
		Kinds:    []sym.Kind{sym.KindClass},
		Eval: func(n *sym.Node) []sym.Violation {
			if isPascalCase(n.Name) {
				return nil
			}
			return []sym.Violation{violationAt(n,
				"class-pascal-case", sym.SeverityWarning,
				"type name is not PascalCase.", n.Name)}
		},
	}
}

func rulePrivateFieldUnderscore() Rule {
	return Rule{
		ID:       "private-field-underscore",
		Summary:  "Private instance fields are prefixed with an underscore followed by camelCase.",
		Severity: sym.SeverityWarning,
		Kinds:    []sym.Kind{sym.KindField},
		Eval: func(n *sym.Node) []sym.Violation {
			if !n.HasModifier("private") || n.HasModifier("const") {
				return nil
			}
			if strings.HasPrefix(n.Name, "_") && isCamelCase(strings.TrimPrefix(n.Name, "_")) {
				return nil
			}
			return []sym.Violation{violationAt(n,
				"private-field-underscore", sym.SeverityWarning,
				"private field name must be _camelCase.", n.Name)}
		},
	}
}

func ruleConstPascalCase() Rule {
	return Rule{
		ID:       "const-pascal-case",
		Summary:  "Constant fields use PascalCase.",
		Severity: sym.SeverityWarning,
		Kinds:    []sym.Kind{sym.KindField},
		Eval: func(n *sym.Node) []sym.Violation {
			if !n.HasModifier("const") || isPascalCase(n.Name) {
				return nil
			}
			return []sym.Violation{violationAt(n,
				"const-pascal-case", sym.SeverityWarning,
				"constant name is not PascalCase.", n.Name)}
		},
	}
}

func ruleParameterCamelCase() Rule {
	return Rule{
		ID:       "parameter-camel-case",
		Summary:  "Parameter names use camelCase.",
		Severity: sym.SeverityInfo,
		Kinds:    []sym.Kind{sym.KindParameter},
		Eval: func(n *sym.Node) []sym.Violation {
			if isCamelCase(n.Name) {
				return nil
			}
			return []sym.Violation{violationAt(n,
				"parameter-camel-case", sym.SeverityInfo,
				"parameter name is not camelCase.", n.Name)}
		},
	}
}

func ruleLocalCamelCase() Rule {
	return Rule{
		ID:       "local-camel-case",
		Summary:  "Local variable names use camelCase.",
		Severity: sym.SeverityInfo,
		Kinds:    []sym.Kind{sym.KindLocal},
		Eval: func(n *sym.Node) []sym.Violation {
			if isCamelCase(n.Name) {
				return nil
			}
			return []sym.Violation{violationAt(n,
				"local-camel-case", sym.SeverityInfo,
				"local variable name is not camelCase.", n.Name)}
		},
	}
}

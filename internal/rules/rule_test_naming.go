package rules

import (
	"regexp"

	"github.com/codewithboateng/stylint/internal/sym"
)

// Method_Scenario_ExpectedOutcome
var testNameRe = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*_[A-Za-z0-9]+_[A-Za-z0-9]+$`)

func ruleTestMethodNaming() Rule {
	return Rule{
		ID:       "test-method-naming",
		Summary:  "Test methods are named Method_Scenario_ExpectedOutcome.",
		Severity: sym.SeverityInfo,
		Kinds:    []sym.Kind{sym.KindMethod},
		Eval:     evalTestMethodNaming,
	}
}

func evalTestMethodNaming(n *sym.Node) []sym.Violation {
	if !n.HasModifier("test") {
		return nil
	}
	if testNameRe.MatchString(n.Name) {
		return nil
	}
	return []sym.Violation{violationAt(n,
		"test-method-naming", sym.SeverityInfo,
		"test method name does not follow Method_Scenario_ExpectedOutcome.",
		n.Name,
	)}
}

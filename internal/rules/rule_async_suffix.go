package rules

import (
	"strings"

	"github.com/codewithboateng/stylint/internal/sym"
)

func ruleAsyncMethodSuffix() Rule {
	return Rule{
		ID:       "async-method-suffix",
		Summary:  "Async methods carry the Async suffix so call sites read correctly.",
		Severity: sym.SeverityInfo,
		Kinds:    []sym.Kind{sym.KindMethod},
		Eval:     evalAsyncMethodSuffix,
	}
}

func evalAsyncMethodSuffix(n *sym.Node) []sym.Violation {
	if !n.HasModifier("async") || isConstructor(n) {
		return nil
	}
	if strings.HasSuffix(n.Name, "Async") {
		return nil
	}
	return []sym.Violation{violationAt(n,
		"async-method-suffix", sym.SeverityInfo,
		"async method name should end with Async.",
		n.Name,
	)}
}

package rules

import (
	"strings"

	"github.com/codewithboateng/stylint/internal/sym"
)

var resolverCalls = []string{".Resolve", ".GetService", ".GetRequiredService"}

func ruleConstructorOnlyResolution() Rule {
	return Rule{
		ID:       "constructor-only-resolution",
		Summary:  "Dependencies are resolved once, in the constructor; method bodies must not call the container.",
		Severity: sym.SeverityError,
		Kinds:    []sym.Kind{sym.KindMethod},
		Eval:     evalConstructorOnlyResolution,
	}
}

func evalConstructorOnlyResolution(n *sym.Node) []sym.Violation {
	if isConstructor(n) {
		return nil
	}
	var out []sym.Violation
	for _, call := range n.Calls {
		if !isResolverCall(call) {
			continue
		}
		out = append(out, violationAt(n,
			"constructor-only-resolution", sym.SeverityError,
			"service resolved outside the constructor; inject the dependency through constructor parameters.",
			call,
		))
	}
	return out
}

func isResolverCall(call string) bool {
	for _, suffix := range resolverCalls {
		if strings.Contains(call, suffix) {
			return true
		}
	}
	return false
}

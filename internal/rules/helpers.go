package rules

import (
	"strings"
	"unicode"

	"github.com/codewithboateng/stylint/internal/sym"
)

func violationAt(n *sym.Node, ruleID, severity, message, evidence string) sym.Violation {
	return sym.Violation{
		RuleID:   ruleID,
		Severity: severity,
		File:     n.File,
		Line:     n.Line,
		Symbol:   n.Path(),
		Message:  message,
		Evidence: evidence,
	}
}

// enclosingClass walks the ancestors to the nearest class declaration.
func enclosingClass(n *sym.Node) *sym.Node {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		if cur.Kind == sym.KindClass {
			return cur
		}
	}
	return nil
}

// isConstructor reports whether a method node declares a constructor: the
// front end either marks it or names it after the enclosing class.
func isConstructor(n *sym.Node) bool {
	if n.HasModifier("constructor") {
		return true
	}
	if c := enclosingClass(n); c != nil && n.Name == c.Name {
		return true
	}
	return false
}

func isPascalCase(name string) bool {
	if name == "" {
		return false
	}
	runes := []rune(name)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	return !strings.ContainsRune(name, '_')
}

func isCamelCase(name string) bool {
	if name == "" {
		return false
	}
	runes := []rune(name)
	if !unicode.IsLower(runes[0]) {
		return false
	}
	return !strings.ContainsRune(name, '_')
}

// isOptionalType matches nullable annotations like "string?" or
// "Nullable<int>".
func isOptionalType(t string) bool {
	t = strings.TrimSpace(t)
	return strings.HasSuffix(t, "?") || strings.HasPrefix(t, "Nullable<")
}

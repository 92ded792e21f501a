package rules

import "github.com/codewithboateng/stylint/internal/sym"

// Rule is a single enforceable convention executed over symbol nodes.
// Rules are value-like and immutable once registered.
type Rule struct {
	ID       string
	Summary  string
	Severity string     // default severity applied to its violations
	Kinds    []sym.Kind // node kinds this rule inspects
	// Eval inspects the node (and its ancestors/descendants only) and
	// returns violations. It must be side-effect free.
	Eval func(n *sym.Node) []sym.Violation
}

// Applies reports whether the rule inspects nodes of the given kind. The
// analyzer never calls Eval on a non-matching kind.
func (r Rule) Applies(k sym.Kind) bool {
	for _, rk := range r.Kinds {
		if rk == k {
			return true
		}
	}
	return false
}

package report

import (
	"sort"

	"github.com/codewithboateng/stylint/internal/sym"
)

// Report is the ordered collection of violations from one analysis run.
// Built once, never mutated afterwards.
type Report struct {
	Violations []sym.Violation `json:"violations"`
}

// New copies and sorts the violations into a finished report.
func New(vs []sym.Violation) Report {
	cp := make([]sym.Violation, len(vs))
	copy(cp, vs)
	Sort(cp)
	return Report{Violations: cp}
}

// Merge combines partial reports by concatenation followed by the total
// sort. The operation is commutative and associative, so parallel workers
// may produce parts in any order.
func Merge(parts ...Report) Report {
	var all []sym.Violation
	for _, p := range parts {
		all = append(all, p.Violations...)
	}
	Sort(all)
	return Report{Violations: all}
}

// Sort orders violations by severity (ERROR > WARNING > INFO), then file,
// line, rule ID, symbol and finally violation ID. The last key makes the
// order total, so formatting is reproducible for any equal violation set.
func Sort(vs []sym.Violation) {
	sort.SliceStable(vs, func(i, j int) bool {
		a, b := vs[i], vs[j]
		if ra, rb := sym.SeverityRank(a.Severity), sym.SeverityRank(b.Severity); ra != rb {
			return ra > rb
		}
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.RuleID != b.RuleID {
			return a.RuleID < b.RuleID
		}
		if a.Symbol != b.Symbol {
			return a.Symbol < b.Symbol
		}
		return a.ID < b.ID
	})
}

func (r Report) HasErrors() bool {
	for _, v := range r.Violations {
		if sym.SeverityRank(v.Severity) >= sym.SeverityRank(sym.SeverityError) {
			return true
		}
	}
	return false
}

// ExitCode implements the CLI contract: zero only when no ERROR-severity
// violation is present.
func (r Report) ExitCode() int {
	if r.HasErrors() {
		return 1
	}
	return 0
}

func (r Report) CountBySeverity() map[string]int {
	out := map[string]int{}
	for _, v := range r.Violations {
		out[v.Severity]++
	}
	return out
}

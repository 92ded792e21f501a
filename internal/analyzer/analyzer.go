// Package analyzer drives rule evaluation over symbol trees: depth-first
// pre-order traversal, one visit per node, with per-rule fault isolation.
package analyzer

import (
	"context"
	"fmt"
	"hash/crc32"

	"golang.org/x/sync/errgroup"

	"github.com/codewithboateng/stylint/internal/report"
	"github.com/codewithboateng/stylint/internal/rules"
	"github.com/codewithboateng/stylint/internal/sym"
)

// RuleCrashedID marks the synthetic violation recorded when a rule panics.
// One rule's fault never aborts the run.
const RuleCrashedID = "rule-crashed"

type Analyzer struct {
	reg *rules.Registry
}

func New(reg *rules.Registry) *Analyzer {
	return &Analyzer{reg: reg}
}

// Analyze evaluates every active rule against every matching node of the
// unit tree. Cancellation is honored between node visits; a cancelled run
// returns ctx.Err() and discards partial results.
func (a *Analyzer) Analyze(ctx context.Context, unit sym.Unit) (report.Report, error) {
	var raw []sym.Violation
	if err := a.walk(ctx, unit.Root, &raw); err != nil {
		return report.Report{}, err
	}
	return report.New(a.finalize(unit, raw)), nil
}

// AnalyzeAll fans analysis out across units and merges the partial
// reports. Partial order never affects the final report: the merge is a
// concatenation followed by the total sort.
func (a *Analyzer) AnalyzeAll(ctx context.Context, units []sym.Unit) (report.Report, error) {
	parts := make([]report.Report, len(units))
	g, gctx := errgroup.WithContext(ctx)
	for i, u := range units {
		g.Go(func() error {
			r, err := a.Analyze(gctx, u)
			if err != nil {
				return err
			}
			parts[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report.Report{}, err
	}
	return report.Merge(parts...), nil
}

func (a *Analyzer) walk(ctx context.Context, n *sym.Node, out *[]sym.Violation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, r := range a.reg.Active(n.Kind) {
		*out = append(*out, a.eval(r, n)...)
	}
	for _, c := range n.Children {
		if err := a.walk(ctx, c, out); err != nil {
			return err
		}
	}
	return nil
}

// eval runs one rule against one node, converting a panic into an INFO
// violation so traversal continues.
func (a *Analyzer) eval(r rules.Rule, n *sym.Node) (vs []sym.Violation) {
	defer func() {
		if rec := recover(); rec != nil {
			vs = []sym.Violation{{
				RuleID:   RuleCrashedID,
				Severity: sym.SeverityInfo,
				File:     n.File,
				Line:     n.Line,
				Symbol:   n.Path(),
				Message:  fmt.Sprintf("rule %s crashed while evaluating this node: %v", r.ID, rec),
				Evidence: r.ID,
			}}
		}
	}()
	return r.Eval(n)
}

// finalize fills defaults, applies the severity threshold and assigns
// deterministic run-unique IDs.
func (a *Analyzer) finalize(unit sym.Unit, in []sym.Violation) []sym.Violation {
	seen := make(map[string]struct{}, len(in))
	put := func(id string) bool {
		if _, ok := seen[id]; ok {
			return false
		}
		seen[id] = struct{}{}
		return true
	}

	out := make([]sym.Violation, 0, len(in))
	seq := 0
	for _, v := range in {
		if v.Severity == "" {
			if r, ok := a.reg.Get(v.RuleID); ok {
				v.Severity = r.Severity
			} else {
				v.Severity = sym.SeverityInfo
			}
		}
		if !a.reg.SeverityOK(v.Severity) {
			continue
		}
		if v.File == "" {
			v.File = unit.File
		}
		id := v.ID
		if id == "" {
			id = makeID(v.RuleID, v.File, v.Symbol, v.Evidence, len(out))
		}
		if !put(id) {
			for {
				seq++
				candidate := fmt.Sprintf("%s-%06d", v.RuleID, seq)
				if put(candidate) {
					id = candidate
					break
				}
			}
		}
		v.ID = id
		out = append(out, v)
	}
	return out
}

func makeID(ruleID, file, symbol, evidence string, idx int) string {
	data := fmt.Sprintf("%s|%s|%s|%s|%d", ruleID, file, symbol, evidence, idx)
	sum := crc32.ChecksumIEEE([]byte(data))
	return fmt.Sprintf("%s-%08x", ruleID, sum)
}

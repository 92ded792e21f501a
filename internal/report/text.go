package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/codewithboateng/stylint/internal/sym"
)

// RenderText writes one line per violation:
//
//	<severity>: <file>:<line>: [<rule_id>] <message>
//
// The report is already totally ordered, so output is byte-identical
// across repeated renders.
func RenderText(w io.Writer, r Report) error {
	for _, v := range r.Violations {
		if _, err := fmt.Fprintf(w, "%s: %s:%d: [%s] %s\n",
			v.Severity, v.File, v.Line, v.RuleID, v.Message); err != nil {
			return err
		}
	}
	return nil
}

// RenderSummary prints a per-rule count table for terminal use.
func RenderSummary(w io.Writer, r Report) {
	type key struct{ rule, sev string }
	counts := map[key]int{}
	for _, v := range r.Violations {
		counts[key{v.RuleID, v.Severity}]++
	}
	keys := make([]key, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if ri, rj := sym.SeverityRank(keys[i].sev), sym.SeverityRank(keys[j].sev); ri != rj {
			return ri > rj
		}
		return keys[i].rule < keys[j].rule
	})

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"RULE", "SEVERITY", "COUNT"})
	for _, k := range keys {
		t.AppendRow(table.Row{k.rule, k.sev, counts[k]})
	}
	t.AppendFooter(table.Row{"TOTAL", "", len(r.Violations)})
	t.Render()
}

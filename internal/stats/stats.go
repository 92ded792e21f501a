// Package stats derives per-unit declaration and violation tallies used by
// the HTML report and the CLI summary.
package stats

import (
	"github.com/codewithboateng/stylint/internal/sym"
)

type UnitStats struct {
	File    string `json:"file"`
	Classes int    `json:"classes"`
	Methods int    `json:"methods"`
	Fields  int    `json:"fields"`
	Enums   int    `json:"enums"`

	Violations int `json:"violations"`
	Errors     int `json:"errors"`
	Warnings   int `json:"warnings"`
	Infos      int `json:"infos"`
}

// Collect tallies declarations per unit and attributes the run's
// violations back to their files. Output order follows run.Units.
func Collect(run *sym.Run) []UnitStats {
	byFile := map[string]*UnitStats{}
	out := make([]UnitStats, len(run.Units))

	for i, u := range run.Units {
		s := &out[i]
		s.File = u.File
		sym.Walk(u.Root, func(n *sym.Node) {
			switch n.Kind {
			case sym.KindClass:
				s.Classes++
			case sym.KindMethod:
				s.Methods++
			case sym.KindField:
				s.Fields++
			case sym.KindEnum:
				s.Enums++
			}
		})
		byFile[u.File] = s
	}

	for _, v := range run.Violations {
		s, ok := byFile[v.File]
		if !ok {
			continue
		}
		s.Violations++
		switch v.Severity {
		case sym.SeverityError:
			s.Errors++
		case sym.SeverityWarning:
			s.Warnings++
		default:
			s.Infos++
		}
	}
	return out
}

// Totals sums unit stats into a single row.
func Totals(units []UnitStats) UnitStats {
	var t UnitStats
	t.File = "TOTAL"
	for _, s := range units {
		t.Classes += s.Classes
		t.Methods += s.Methods
		t.Fields += s.Fields
		t.Enums += s.Enums
		t.Violations += s.Violations
		t.Errors += s.Errors
		t.Warnings += s.Warnings
		t.Infos += s.Infos
	}
	return t
}

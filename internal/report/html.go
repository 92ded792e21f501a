package report

import (
	"fmt"
	"html"
	"os"
	"path/filepath"

	"github.com/codewithboateng/stylint/internal/stats"
	"github.com/codewithboateng/stylint/internal/sym"
)

func WriteHTML(runID, outDir string, run *sym.Run) (string, error) {
	path := filepath.Join(outDir, runID+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	unitStats := stats.Collect(run)
	totals := stats.Totals(unitStats)

	fmt.Fprintf(f, "<!doctype html><html><head><meta charset='utf-8'><title>%s</title>", html.EscapeString(runID))
	fmt.Fprint(f, "<style>body{font-family:system-ui,Arial,sans-serif;padding:20px;line-height:1.4} table{border-collapse:collapse;margin:8px 0} td,th{border:1px solid #ddd;padding:6px} h1,h2{margin:6px 0 4px} .dim{color:#666} .mono{font-family:ui-monospace,Menlo,Consolas,monospace}</style>")
	fmt.Fprint(f, "</head><body>")

	fmt.Fprintf(f, "<h1>stylint report: <span class='mono'>%s</span></h1>", html.EscapeString(runID))
	fmt.Fprintf(f, "<p>Units: %d &nbsp; Violations: %d (errors=%d warnings=%d infos=%d)</p>",
		len(run.Units), totals.Violations, totals.Errors, totals.Warnings, totals.Infos)

	fmt.Fprintf(f, "<p class='dim'>Severity threshold: %s", html.EscapeString(run.Context.SeverityThreshold))
	if n := len(run.Context.DisabledRules); n > 0 {
		fmt.Fprintf(f, " &nbsp; Disabled rules: %d", n)
	}
	fmt.Fprint(f, "</p>")

	// Per-unit overview
	if len(unitStats) > 0 {
		fmt.Fprint(f, "<h2>Units</h2><table><tr><th>File</th><th>Classes</th><th>Methods</th><th>Fields</th><th>Enums</th><th>Violations</th></tr>")
		for _, s := range unitStats {
			fmt.Fprintf(f, "<tr><td class='mono'>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td></tr>",
				html.EscapeString(s.File), s.Classes, s.Methods, s.Fields, s.Enums, s.Violations)
		}
		fmt.Fprint(f, "</table>")
	}

	// All violations, already in report order inside the run
	if len(run.Violations) > 0 {
		fmt.Fprint(f, "<h2>All Violations</h2><table><tr><th>Severity</th><th>Rule</th><th>File</th><th>Line</th><th>Symbol</th><th>Message</th></tr>")
		for _, v := range run.Violations {
			fmt.Fprintf(f, "<tr><td>%s</td><td>%s</td><td class='mono'>%s</td><td>%d</td><td class='mono'>%s</td><td>%s</td></tr>",
				html.EscapeString(v.Severity),
				html.EscapeString(v.RuleID),
				html.EscapeString(v.File),
				v.Line,
				html.EscapeString(v.Symbol),
				html.EscapeString(v.Message),
			)
		}
		fmt.Fprint(f, "</table>")
	} else {
		fmt.Fprint(f, "<h2>All Violations</h2><p class='dim'>No violations at or above the configured threshold.</p>")
	}

	fmt.Fprint(f, "</body></html>")
	return path, nil
}

package golden

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/codewithboateng/stylint/internal/analyzer"
	"github.com/codewithboateng/stylint/internal/loader"
	"github.com/codewithboateng/stylint/internal/rules"
	"github.com/codewithboateng/stylint/internal/sym"
)

var update = flag.Bool("update", false, "update golden snapshot")

const goldenFile = "expected.json"

const sampleBilling = `unit: Billing/InvoiceService.cs
declarations:
  - kind: class
    name: InvoiceService
    line: 5
    members:
      - kind: field
        name: _db
        type: BillingDbContext
        modifiers: [private]
        line: 7
      - kind: field
        name: retryCount
        type: int
        modifiers: [private]
        line: 8
      - kind: method
        name: InvoiceService
        modifiers: [constructor, public]
        line: 10
        members:
          - kind: parameter
            name: db
            type: BillingDbContext
      - kind: method
        name: Send
        modifiers: [async, public]
        line: 14
        calls: [provider.GetService]
  - kind: enum
    name: Status
    line: 30
    members:
      - kind: enum_member
        name: Draft
      - kind: enum_member
        name: Sent
        value: "1"
`

func TestGolden_BillingSnapshot(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "billing.yaml"), []byte(sampleBilling), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	run, _, err := loader.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	reg, err := rules.Default(rules.Settings{SeverityThreshold: sym.SeverityInfo})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	rep, err := analyzer.New(reg).AnalyzeAll(context.Background(), run.Units)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	// stable fields only for the snapshot
	run.Source = "samples/billing"
	norm := normalize(run.Source, run.SchemaVersion, rep.Violations)

	got, err := json.MarshalIndent(norm, "", "  ")
	if err != nil {
		t.Fatalf("marshal got: %v", err)
	}

	if *update {
		if err := os.WriteFile(goldenFile, got, 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		t.Logf("updated %s", goldenFile)
		return
	}

	want, err := os.ReadFile(goldenFile)
	if err != nil {
		t.Fatalf("read golden (%s): %v\nRun with: go test ./test/golden -run TestGolden_BillingSnapshot -args -update", goldenFile, err)
	}

	if !bytes.Equal(bytes.TrimSpace(got), bytes.TrimSpace(want)) {
		tmp := filepath.Join(t.TempDir(), "got.json")
		_ = os.WriteFile(tmp, got, 0o644)
		t.Fatalf("golden mismatch.\n  golden: %s\n  actual: %s\nTip: update with\n  go test ./test/golden -run TestGolden_BillingSnapshot -count=1 -args -update", goldenFile, tmp)
	}
}

type snapLite struct {
	Source        string          `json:"source"`
	SchemaVersion string          `json:"schema_version"`
	Violations    []violationLite `json:"violations"`
}

type violationLite struct {
	RuleID   string `json:"rule_id"`
	Severity string `json:"severity"`
	File     string `json:"file"`
	Line     int    `json:"line"`
	Symbol   string `json:"symbol"`
	Message  string `json:"message"`
	Evidence string `json:"evidence"`
}

// normalize drops the run-unique violation IDs; the report order is
// already total, so no re-sorting is needed.
func normalize(source, schema string, vs []sym.Violation) snapLite {
	out := snapLite{Source: source, SchemaVersion: schema, Violations: []violationLite{}}
	for _, v := range vs {
		out.Violations = append(out.Violations, violationLite{
			RuleID:   v.RuleID,
			Severity: v.Severity,
			File:     v.File,
			Line:     v.Line,
			Symbol:   v.Symbol,
			Message:  v.Message,
			Evidence: v.Evidence,
		})
	}
	return out
}

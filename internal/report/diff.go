package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/codewithboateng/stylint/internal/sym"
)

type diffPayload struct {
	BaseID  string          `json:"base_id"`
	HeadID  string          `json:"head_id"`
	Summary diffSummary     `json:"summary"`
	New     []diffViolation `json:"new"`
	Removed []diffViolation `json:"removed"`
	Changed []diffChanged   `json:"changed"`
}

type diffSummary struct {
	NewCount     int `json:"new"`
	RemovedCount int `json:"removed"`
	ChangedCount int `json:"changed"`
}

type diffViolation struct {
	RuleID   string `json:"rule_id"`
	File     string `json:"file"`
	Line     int    `json:"line,omitempty"`
	Symbol   string `json:"symbol,omitempty"`
	Severity string `json:"severity,omitempty"`
	Message  string `json:"message,omitempty"`
}

type diffChanged struct {
	Key     string        `json:"key"`
	Base    diffViolation `json:"base"`
	Head    diffViolation `json:"head"`
	Changed []string      `json:"fields_changed"`
}

// WriteDiffJSON compares two persisted runs and writes the delta.
func WriteDiffJSON(baseID, headID, outDir string, base, head *sym.Run) (string, error) {
	path := filepath.Join(outDir, "diff_"+baseID+"__"+headID+".json")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}

	bm := map[string]sym.Violation{}
	hm := map[string]sym.Violation{}
	for _, v := range base.Violations {
		bm[keyOf(v)] = v
	}
	for _, v := range head.Violations {
		hm[keyOf(v)] = v
	}

	var added []diffViolation
	var removed []diffViolation
	var changed []diffChanged

	for k, hv := range hm {
		bv, ok := bm[k]
		if !ok {
			added = append(added, asDiff(hv))
			continue
		}
		var fields []string
		if norm(bv.Severity) != norm(hv.Severity) {
			fields = append(fields, "severity")
		}
		if strings.TrimSpace(bv.Message) != strings.TrimSpace(hv.Message) {
			fields = append(fields, "message")
		}
		if bv.Line != hv.Line {
			fields = append(fields, "line")
		}
		if len(fields) > 0 {
			changed = append(changed, diffChanged{
				Key:     k,
				Base:    asDiff(bv),
				Head:    asDiff(hv),
				Changed: fields,
			})
		}
	}
	for k, bv := range bm {
		if _, ok := hm[k]; !ok {
			removed = append(removed, asDiff(bv))
		}
	}

	sort.Slice(added, func(i, j int) bool { return lessDiff(added[i], added[j]) })
	sort.Slice(removed, func(i, j int) bool { return lessDiff(removed[i], removed[j]) })
	sort.Slice(changed, func(i, j int) bool { return changed[i].Key < changed[j].Key })

	payload := diffPayload{
		BaseID: baseID, HeadID: headID,
		Summary: diffSummary{
			NewCount:     len(added),
			RemovedCount: len(removed),
			ChangedCount: len(changed),
		},
		New:     added,
		Removed: removed,
		Changed: changed,
	}
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, b, 0o644)
}

// keyOf is the logical identity of a violation across runs: rule, file and
// symbol plus the evidence that triggered it. Line numbers move too often
// to take part.
func keyOf(v sym.Violation) string {
	sb := strings.Builder{}
	sb.WriteString(norm(v.RuleID))
	sb.WriteByte('|')
	sb.WriteString(norm(v.File))
	sb.WriteByte('|')
	sb.WriteString(norm(v.Symbol))
	sb.WriteByte('|')
	sb.WriteString(norm(v.Evidence))
	return sb.String()
}

func asDiff(v sym.Violation) diffViolation {
	return diffViolation{
		RuleID:   v.RuleID,
		File:     v.File,
		Line:     v.Line,
		Symbol:   v.Symbol,
		Severity: v.Severity,
		Message:  v.Message,
	}
}

func lessDiff(a, b diffViolation) bool {
	if a.RuleID != b.RuleID {
		return a.RuleID < b.RuleID
	}
	if a.File != b.File {
		return a.File < b.File
	}
	return a.Symbol < b.Symbol
}

func norm(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

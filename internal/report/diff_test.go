package report

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codewithboateng/stylint/internal/sym"
)

func TestWriteDiffJSON(t *testing.T) {
	base := &sym.Run{ID: "run-a", Violations: []sym.Violation{
		{ID: "1", RuleID: "class-pascal-case", File: "a.cs", Symbol: "svc", Severity: sym.SeverityWarning, Message: "m", Line: 3},
		{ID: "2", RuleID: "local-camel-case", File: "a.cs", Symbol: "svc.Run.X", Severity: sym.SeverityInfo, Message: "m"},
	}}
	head := &sym.Run{ID: "run-b", Violations: []sym.Violation{
		// same identity, moved line
		{ID: "1", RuleID: "class-pascal-case", File: "a.cs", Symbol: "svc", Severity: sym.SeverityWarning, Message: "m", Line: 9},
		// new violation
		{ID: "3", RuleID: "async-method-suffix", File: "b.cs", Symbol: "B.Send", Severity: sym.SeverityInfo, Message: "m"},
	}}

	path, err := WriteDiffJSON("run-a", "run-b", t.TempDir(), base, head)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var payload struct {
		Summary struct {
			New     int `json:"new"`
			Removed int `json:"removed"`
			Changed int `json:"changed"`
		} `json:"summary"`
		New []struct {
			RuleID string `json:"rule_id"`
		} `json:"new"`
		Changed []struct {
			Changed []string `json:"fields_changed"`
		} `json:"changed"`
	}
	require.NoError(t, json.Unmarshal(b, &payload))

	require.Equal(t, 1, payload.Summary.New)
	require.Equal(t, 1, payload.Summary.Removed) // local-camel-case disappeared
	require.Equal(t, 1, payload.Summary.Changed)
	require.Equal(t, "async-method-suffix", payload.New[0].RuleID)
	require.Equal(t, []string{"line"}, payload.Changed[0].Changed)
}

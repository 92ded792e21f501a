package stats

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codewithboateng/stylint/internal/sym"
)

func sampleRun(t *testing.T) *sym.Run {
	t.Helper()
	run := &sym.Run{
		Units: []sym.Unit{
			{File: "a.cs", Root: &sym.Node{Kind: sym.KindUnit, Name: "a.cs", Children: []*sym.Node{
				{Kind: sym.KindClass, Name: "A", Children: []*sym.Node{
					{Kind: sym.KindField, Name: "_x"},
					{Kind: sym.KindMethod, Name: "Run"},
				}},
				{Kind: sym.KindEnum, Name: "E", Children: []*sym.Node{
					{Kind: sym.KindEnumMember, Name: "M"},
				}},
			}}},
			{File: "b.cs", Root: &sym.Node{Kind: sym.KindUnit, Name: "b.cs", Children: []*sym.Node{
				{Kind: sym.KindClass, Name: "B"},
			}}},
		},
		Violations: []sym.Violation{
			{ID: "1", File: "a.cs", Severity: sym.SeverityError},
			{ID: "2", File: "a.cs", Severity: sym.SeverityWarning},
			{ID: "3", File: "b.cs", Severity: sym.SeverityInfo},
			{ID: "4", File: "unknown.cs", Severity: sym.SeverityError},
		},
	}
	require.NoError(t, run.Link())
	return run
}

func TestCollect(t *testing.T) {
	units := Collect(sampleRun(t))
	require.Len(t, units, 2)

	a := units[0]
	require.Equal(t, "a.cs", a.File)
	require.Equal(t, 1, a.Classes)
	require.Equal(t, 1, a.Methods)
	require.Equal(t, 1, a.Fields)
	require.Equal(t, 1, a.Enums)
	require.Equal(t, 2, a.Violations)
	require.Equal(t, 1, a.Errors)
	require.Equal(t, 1, a.Warnings)

	b := units[1]
	require.Equal(t, 1, b.Classes)
	require.Equal(t, 1, b.Violations)
	require.Equal(t, 1, b.Infos)
}

func TestTotals(t *testing.T) {
	total := Totals(Collect(sampleRun(t)))
	require.Equal(t, "TOTAL", total.File)
	require.Equal(t, 2, total.Classes)
	require.Equal(t, 3, total.Violations) // the unattributable one is dropped
	require.Equal(t, 1, total.Errors)
	require.Equal(t, 1, total.Warnings)
	require.Equal(t, 1, total.Infos)
}

package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codewithboateng/stylint/internal/storage"
	"github.com/codewithboateng/stylint/internal/sym"
)

func TestApplyWaivers_RuleOnly(t *testing.T) {
	in := []sym.Violation{
		{ID: "1", RuleID: "class-pascal-case", File: "a.cs"},
		{ID: "2", RuleID: "async-method-suffix", File: "a.cs"},
	}
	kept, waived := ApplyWaivers(in, []storage.Waiver{{RuleID: "class-pascal-case"}})
	require.Equal(t, 1, waived)
	require.Len(t, kept, 1)
	require.Equal(t, "2", kept[0].ID)
}

func TestApplyWaivers_FileScoped(t *testing.T) {
	in := []sym.Violation{
		{ID: "1", RuleID: "r", File: "legacy/old.cs"},
		{ID: "2", RuleID: "r", File: "new.cs"},
	}
	kept, waived := ApplyWaivers(in, []storage.Waiver{{RuleID: "R", File: "legacy/old.cs"}})
	require.Equal(t, 1, waived)
	require.Equal(t, "2", kept[0].ID)
}

func TestApplyWaivers_PatternMatchesEvidenceOrMessage(t *testing.T) {
	in := []sym.Violation{
		{ID: "1", RuleID: "r", Evidence: "container.Resolve"},
		{ID: "2", RuleID: "r", Message: "service resolved outside the constructor"},
		{ID: "3", RuleID: "r", Evidence: "other"},
	}
	kept, waived := ApplyWaivers(in, []storage.Waiver{{RuleID: "r", PatternSub: "resolve"}})
	require.Equal(t, 2, waived)
	require.Len(t, kept, 1)
	require.Equal(t, "3", kept[0].ID)
}

func TestApplyWaivers_NoWaiversPassthrough(t *testing.T) {
	in := []sym.Violation{{ID: "1", RuleID: "r"}}
	kept, waived := ApplyWaivers(in, nil)
	require.Zero(t, waived)
	require.Equal(t, in, kept)
}

package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codewithboateng/stylint/internal/sym"
)

const invoiceUnit = `unit: Billing/Invoice.cs
declarations:
  - kind: class
    name: Invoice
    line: 3
    members:
      - kind: field
        name: _db
        type: BillingDbContext
        modifiers: [private]
        line: 5
      - kind: method
        name: TotalAsync
        modifiers: [async, public]
        line: 9
        members:
          - kind: parameter
            name: taxRate
            type: decimal
`

func writeUnits(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

func TestLoad_BuildsLinkedRun(t *testing.T) {
	dir := writeUnits(t, map[string]string{"invoice.yaml": invoiceUnit})

	run, diags, err := Load(dir)
	require.NoError(t, err)
	require.Empty(t, diags.Warnings)
	require.Equal(t, sym.SchemaVersion, run.SchemaVersion)
	require.Len(t, run.Units, 1)

	u := run.Units[0]
	require.Equal(t, "Billing/Invoice.cs", u.File)
	require.Equal(t, sym.KindUnit, u.Root.Kind)

	class := u.Root.Children[0]
	require.Equal(t, sym.KindClass, class.Kind)
	require.Same(t, u.Root, class.Parent())

	// file stamped onto every node the front end left unlocated
	method := class.Children[1]
	require.Equal(t, "Billing/Invoice.cs", method.File)
	require.Equal(t, "Invoice.TotalAsync", method.Path())
}

func TestLoad_LexicalFileOrder(t *testing.T) {
	dir := writeUnits(t, map[string]string{
		"b.yaml": "unit: b.cs\ndeclarations: []\n",
		"a.yaml": "unit: a.cs\ndeclarations: []\n",
		"c.yml":  "unit: c.cs\ndeclarations: []\n",
	})

	run, _, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, run.Units, 3)
	require.Equal(t, "a.cs", run.Units[0].File)
	require.Equal(t, "b.cs", run.Units[1].File)
	require.Equal(t, "c.cs", run.Units[2].File)
}

func TestLoad_MalformedYAMLIsParseError(t *testing.T) {
	dir := writeUnits(t, map[string]string{"bad.yaml": "declarations: [unclosed"})

	_, _, err := Load(dir)
	require.Error(t, err)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	require.Contains(t, perr.File, "bad.yaml")
}

func TestLoad_UnknownKindIsParseError(t *testing.T) {
	dir := writeUnits(t, map[string]string{
		"bad.yaml": "unit: x.cs\ndeclarations:\n  - kind: struct\n    name: S\n",
	})

	_, _, err := Load(dir)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	require.Contains(t, err.Error(), "unknown kind")
}

func TestLoad_MissingNameIsParseError(t *testing.T) {
	dir := writeUnits(t, map[string]string{
		"bad.yaml": "unit: x.cs\ndeclarations:\n  - kind: class\n    name: \"\"\n",
	})

	_, _, err := Load(dir)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	require.Contains(t, err.Error(), "missing a name")
}

func TestLoad_EmptyDirWarnsButSucceeds(t *testing.T) {
	run, diags, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, run.Units)
	require.Len(t, diags.Warnings, 1)
}

func TestLoad_MissingPathIsParseError(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope"))
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
}

func TestLoad_SingleFilePath(t *testing.T) {
	dir := writeUnits(t, map[string]string{"one.yaml": invoiceUnit})

	run, _, err := Load(filepath.Join(dir, "one.yaml"))
	require.NoError(t, err)
	require.Len(t, run.Units, 1)
}

func TestLoad_IgnoresNonYAMLFiles(t *testing.T) {
	dir := writeUnits(t, map[string]string{
		"a.yaml":  "unit: a.cs\ndeclarations: []\n",
		"readme":  "not a unit",
		"b.json":  "{}",
		"c.yaml~": "junk",
	})

	run, _, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, run.Units, 1)
}

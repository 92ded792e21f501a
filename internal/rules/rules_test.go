package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codewithboateng/stylint/internal/sym"
)

// link builds a unit tree around the given declarations and wires parents.
func link(t *testing.T, decls ...*sym.Node) *sym.Node {
	t.Helper()
	root := &sym.Node{Kind: sym.KindUnit, Name: "t.cs", File: "t.cs", Children: decls}
	require.NoError(t, root.Link())
	return root
}

// evalAll runs one rule over every matching node of the tree.
func evalAll(r Rule, root *sym.Node) []sym.Violation {
	var out []sym.Violation
	sym.Walk(root, func(n *sym.Node) {
		if r.Applies(n.Kind) {
			out = append(out, r.Eval(n)...)
		}
	})
	return out
}

func TestExplicitEnumValues_FlagsEachUnvaluedMember(t *testing.T) {
	root := link(t, &sym.Node{
		Kind: sym.KindEnum, Name: "Weekday",
		Children: []*sym.Node{
			{Kind: sym.KindEnumMember, Name: "Monday"},
			{Kind: sym.KindEnumMember, Name: "Tuesday"},
		},
	})

	vs := evalAll(ruleExplicitEnumValues(), root)
	require.Len(t, vs, 2)
	require.Equal(t, "Weekday.Monday", vs[0].Evidence)
	require.Equal(t, "Weekday.Tuesday", vs[1].Evidence)
	require.Equal(t, sym.SeverityWarning, vs[0].Severity)
}

func TestExplicitEnumValues_ValuedMembersPass(t *testing.T) {
	root := link(t, &sym.Node{
		Kind: sym.KindEnum, Name: "Weekday",
		Children: []*sym.Node{
			{Kind: sym.KindEnumMember, Name: "Monday", Value: "0"},
			{Kind: sym.KindEnumMember, Name: "Tuesday", Value: "1"},
		},
	})
	require.Empty(t, evalAll(ruleExplicitEnumValues(), root))
}

func TestNoPartialDeclarations_FlagsSplitType(t *testing.T) {
	root := link(t,
		&sym.Node{Kind: sym.KindClass, Name: "Order", Modifiers: []string{"partial"}},
		&sym.Node{Kind: sym.KindClass, Name: "Order", Modifiers: []string{"partial"}},
	)

	vs := evalAll(ruleNoPartialDeclarations(), root)
	require.Len(t, vs, 2) // each half reports
	require.Equal(t, "Order", vs[0].Evidence)
}

func TestNoPartialDeclarations_LonePartialPasses(t *testing.T) {
	root := link(t, &sym.Node{Kind: sym.KindClass, Name: "Order", Modifiers: []string{"partial"}})
	require.Empty(t, evalAll(ruleNoPartialDeclarations(), root))
}

func TestConstructorOnlyResolution_FlagsResolverInMethodBody(t *testing.T) {
	root := link(t, &sym.Node{
		Kind: sym.KindClass, Name: "OrderService",
		Children: []*sym.Node{
			{Kind: sym.KindMethod, Name: "OrderService", Modifiers: []string{"constructor"},
				Calls: []string{"container.Resolve"}},
			{Kind: sym.KindMethod, Name: "Ship",
				Calls: []string{"_db.SaveChanges", "provider.GetRequiredService"}},
		},
	})

	vs := evalAll(ruleConstructorOnlyResolution(), root)
	require.Len(t, vs, 1)
	require.Equal(t, sym.SeverityError, vs[0].Severity)
	require.Equal(t, "provider.GetRequiredService", vs[0].Evidence)
	require.Equal(t, "OrderService.Ship", vs[0].Symbol)
}

func TestConstructorOnlyResolution_CtorByNamePasses(t *testing.T) {
	// constructor recognized by name matching the class, no modifier
	root := link(t, &sym.Node{
		Kind: sym.KindClass, Name: "Cart",
		Children: []*sym.Node{
			{Kind: sym.KindMethod, Name: "Cart", Calls: []string{"scope.GetService"}},
		},
	})
	require.Empty(t, evalAll(ruleConstructorOnlyResolution(), root))
}

func TestNoNullComparisonOnOptional(t *testing.T) {
	root := link(t, &sym.Node{
		Kind: sym.KindClass, Name: "Profile",
		Children: []*sym.Node{
			{Kind: sym.KindField, Name: "nickname", Type: "string?"},
			{Kind: sym.KindField, Name: "age", Type: "int"},
			{Kind: sym.KindMethod, Name: "Display", NullEquality: []string{"nickname", "age"}},
		},
	})

	vs := evalAll(ruleNoNullComparisonOnOptional(), root)
	require.Len(t, vs, 1)
	require.Contains(t, vs[0].Evidence, "nickname == null")
}

func TestNoNullComparisonOnOptional_NullableGeneric(t *testing.T) {
	root := link(t, &sym.Node{
		Kind: sym.KindClass, Name: "Profile",
		Children: []*sym.Node{
			{Kind: sym.KindField, Name: "age", Type: "Nullable<int>"},
			{Kind: sym.KindMethod, Name: "Display", NullEquality: []string{"age"}},
		},
	})
	require.Len(t, evalAll(ruleNoNullComparisonOnOptional(), root), 1)
}

func TestNamingRules(t *testing.T) {
	cases := []struct {
		name string
		rule Rule
		node *sym.Node
		want int
	}{
		{"class snake_case flagged", ruleClassPascalCase(),
			&sym.Node{Kind: sym.KindClass, Name: "order_service"}, 1},
		{"class PascalCase passes", ruleClassPascalCase(),
			&sym.Node{Kind: sym.KindClass, Name: "OrderService"}, 0},
		{"private field without underscore flagged", rulePrivateFieldUnderscore(),
			&sym.Node{Kind: sym.KindField, Name: "total", Modifiers: []string{"private"}}, 1},
		{"private field _camelCase passes", rulePrivateFieldUnderscore(),
			&sym.Node{Kind: sym.KindField, Name: "_total", Modifiers: []string{"private"}}, 0},
		{"public field ignored", rulePrivateFieldUnderscore(),
			&sym.Node{Kind: sym.KindField, Name: "Total", Modifiers: []string{"public"}}, 0},
		{"const camelCase flagged", ruleConstPascalCase(),
			&sym.Node{Kind: sym.KindField, Name: "maxRetries", Modifiers: []string{"private", "const"}}, 1},
		{"const PascalCase passes", ruleConstPascalCase(),
			&sym.Node{Kind: sym.KindField, Name: "MaxRetries", Modifiers: []string{"const"}}, 0},
		{"parameter PascalCase flagged", ruleParameterCamelCase(),
			&sym.Node{Kind: sym.KindParameter, Name: "TaxRate"}, 1},
		{"parameter camelCase passes", ruleParameterCamelCase(),
			&sym.Node{Kind: sym.KindParameter, Name: "taxRate"}, 0},
		{"local snake_case flagged", ruleLocalCamelCase(),
			&sym.Node{Kind: sym.KindLocal, Name: "line_total"}, 1},
		{"local camelCase passes", ruleLocalCamelCase(),
			&sym.Node{Kind: sym.KindLocal, Name: "lineTotal"}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root := link(t, tc.node)
			require.Len(t, evalAll(tc.rule, root), tc.want)
		})
	}
}

func TestAsyncMethodSuffix(t *testing.T) {
	root := link(t, &sym.Node{
		Kind: sym.KindClass, Name: "Mailer",
		Children: []*sym.Node{
			{Kind: sym.KindMethod, Name: "Send", Modifiers: []string{"async"}},
			{Kind: sym.KindMethod, Name: "SendAsync", Modifiers: []string{"async"}},
			{Kind: sym.KindMethod, Name: "Flush"},
		},
	})

	vs := evalAll(ruleAsyncMethodSuffix(), root)
	require.Len(t, vs, 1)
	require.Equal(t, "Send", vs[0].Evidence)
	require.Equal(t, sym.SeverityInfo, vs[0].Severity)
}

func TestTestMethodNaming(t *testing.T) {
	root := link(t, &sym.Node{
		Kind: sym.KindClass, Name: "InvoiceTests",
		Children: []*sym.Node{
			{Kind: sym.KindMethod, Name: "Total_EmptyCart_ReturnsZero", Modifiers: []string{"test"}},
			{Kind: sym.KindMethod, Name: "TestTotal", Modifiers: []string{"test"}},
			{Kind: sym.KindMethod, Name: "Helper"},
		},
	})

	vs := evalAll(ruleTestMethodNaming(), root)
	require.Len(t, vs, 1)
	require.Equal(t, "TestTotal", vs[0].Evidence)
}

func TestDbContextConstructorInjected(t *testing.T) {
	injected := &sym.Node{
		Kind: sym.KindClass, Name: "BillingService",
		Children: []*sym.Node{
			{Kind: sym.KindField, Name: "_db", Type: "BillingDbContext", Modifiers: []string{"private"}},
			{Kind: sym.KindMethod, Name: "BillingService", Modifiers: []string{"constructor"},
				Children: []*sym.Node{
					{Kind: sym.KindParameter, Name: "db", Type: "BillingDbContext"},
				}},
		},
	}
	newedUp := &sym.Node{
		Kind: sym.KindClass, Name: "ReportService",
		Children: []*sym.Node{
			{Kind: sym.KindField, Name: "_db", Type: "ReportDbContext", Modifiers: []string{"private"}},
			{Kind: sym.KindMethod, Name: "ReportService", Modifiers: []string{"constructor"}},
		},
	}
	root := link(t, injected, newedUp)

	vs := evalAll(ruleDbContextConstructorInjected(), root)
	require.Len(t, vs, 1)
	require.Equal(t, "ReportService._db", vs[0].Symbol)
}

func TestBuiltin_AllRegistrable(t *testing.T) {
	reg, err := Default(Settings{})
	require.NoError(t, err)
	for _, r := range Builtin() {
		got, ok := reg.Get(r.ID)
		require.True(t, ok, r.ID)
		require.NotNil(t, got.Eval, r.ID)
		require.NotEmpty(t, got.Kinds, r.ID)
		require.NotEmpty(t, got.Severity, r.ID)
	}
}

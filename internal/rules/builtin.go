package rules

// Builtin returns the built-in rule set in its canonical registration
// order.
func Builtin() []Rule {
	return []Rule{
		ruleExplicitEnumValues(),
		ruleNoPartialDeclarations(),
		ruleConstructorOnlyResolution(),
		ruleNoNullComparisonOnOptional(),
		ruleClassPascalCase(),
		rulePrivateFieldUnderscore(),
		ruleConstPascalCase(),
		ruleParameterCamelCase(),
		ruleLocalCamelCase(),
		ruleAsyncMethodSuffix(),
		ruleTestMethodNaming(),
		ruleDbContextConstructorInjected(),
	}
}

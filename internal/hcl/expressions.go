package hcl

import (
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// traversalKey renders a traversal in its canonical source form, e.g.
// `variable.mu` or `data.x[0]`.
func traversalKey(t hcl.Traversal) string {
	return string(hclwrite.TokensForTraversal(t).Bytes())
}

// analyze returns the unique references and called function names of expr,
// both sorted.
func analyze(expr hcl.Expression) ([]string, []string) {
	if expr == nil {
		return nil, nil
	}

	refs := make(map[string]struct{})
	for _, traversal := range expr.Variables() {
		refs[traversalKey(traversal)] = struct{}{}
	}
	funcs := make(map[string]struct{})
	if syntaxExpr, ok := expr.(hclsyntax.Expression); ok {
		walkForFunctions(syntaxExpr, funcs)
	}
	return sortedKeys(refs), sortedKeys(funcs)
}

func sortedKeys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// walkForFunctions recursively walks the AST, looking only for function calls.
func walkForFunctions(expr hclsyntax.Expression, functions map[string]struct{}) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		functions[e.Name] = struct{}{}
		for _, arg := range e.Args {
			walkForFunctions(arg, functions)
		}
	case *hclsyntax.BinaryOpExpr:
		walkForFunctions(e.LHS, functions)
		walkForFunctions(e.RHS, functions)
	case *hclsyntax.ConditionalExpr:
		walkForFunctions(e.Condition, functions)
		walkForFunctions(e.TrueResult, functions)
		walkForFunctions(e.FalseResult, functions)
	case *hclsyntax.UnaryOpExpr:
		walkForFunctions(e.Val, functions)
	case *hclsyntax.TupleConsExpr:
		for _, item := range e.Exprs {
			walkForFunctions(item, functions)
		}
	case *hclsyntax.ObjectConsExpr:
		for _, item := range e.Items {
			walkForFunctions(item.KeyExpr, functions)
			walkForFunctions(item.ValueExpr, functions)
		}
	case *hclsyntax.ForExpr:
		walkForFunctions(e.CollExpr, functions)
		walkForFunctions(e.KeyExpr, functions)
		walkForFunctions(e.ValExpr, functions)
		walkForFunctions(e.CondExpr, functions)
	case *hclsyntax.IndexExpr:
		walkForFunctions(e.Collection, functions)
		walkForFunctions(e.Key, functions)
	case *hclsyntax.SplatExpr:
		walkForFunctions(e.Source, functions)
		walkForFunctions(e.Each, functions)
	case *hclsyntax.ParenthesesExpr:
		walkForFunctions(e.Expression, functions)
	}
}

// checkConstant reports references and unknown functions inside an
// expression that must evaluate to a constant.
func checkConstant(expr hcl.Expression, available map[string]struct{}) hcl.Diagnostics {
	refs, funcs := analyze(expr)
	if len(refs) > 0 {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "References are not allowed here",
			Detail:   "A constant cannot read " + refs[0] + ". Combine declarations with an operation block instead.",
			Subject:  expr.Range().Ptr(),
		}}
	}
	for _, name := range funcs {
		if _, ok := available[name]; !ok {
			return hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Unsupported function",
				Detail:   "There is no function named " + name + ".",
				Subject:  expr.Range().Ptr(),
			}}
		}
	}
	return nil
}

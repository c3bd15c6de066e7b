package hcl

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseExpr is a test helper to quickly get an hcl.Expression from a string.
func parseExpr(t *testing.T, src string) hcl.Expression {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), "Expression parsing failed: %s", diags.Error())
	return expr
}

func TestAnalyze(t *testing.T) {
	refs, funcs := analyze(parseExpr(t, `max(abs(variable.mu), data.x[0], variable.mu) + pow(2, 3)`))
	assert.Equal(t, []string{"data.x[0]", "variable.mu"}, refs)
	assert.Equal(t, []string{"abs", "max", "pow"}, funcs)

	refs, funcs = analyze(parseExpr(t, `[1, 2, 3]`))
	assert.Empty(t, refs)
	assert.Empty(t, funcs)
}

func TestCheckConstant(t *testing.T) {
	available := map[string]struct{}{"abs": {}}

	assert.Empty(t, checkConstant(parseExpr(t, `abs(-2)`), available))

	diags := checkConstant(parseExpr(t, `variable.mu * 2`), available)
	require.True(t, diags.HasErrors())
	assert.Equal(t, "References are not allowed here", diags[0].Summary)
	assert.Contains(t, diags[0].Detail, "variable.mu")

	diags = checkConstant(parseExpr(t, `[abs(1), sqrt(4)]`), available)
	require.True(t, diags.HasErrors())
	assert.Equal(t, "Unsupported function", diags[0].Summary)
	assert.Contains(t, diags[0].Detail, "sqrt")
}

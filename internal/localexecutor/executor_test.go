package localexecutor

import (
	"context"
	"testing"

	"github.com/specialistvlad/gretago/internal/config"
	"github.com/specialistvlad/gretago/internal/ctxlog"
	"github.com/specialistvlad/gretago/internal/executor"
	"github.com/specialistvlad/gretago/internal/handlers"
	"github.com/specialistvlad/gretago/internal/node"
	"github.com/specialistvlad/gretago/internal/nodeid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func testCtx() context.Context {
	return ctxlog.WithLogger(context.Background(), ctxlog.Discard())
}

type fixture struct {
	x, mu, scaled, eta, lik nodeid.ID
	plan                    *executor.Plan
}

// newFixture describes eta = mu * x + 0.1 scored by lik, with x = [1, 2].
func newFixture(opts config.Options) *fixture {
	g := nodeid.NewGenerator()
	f := &fixture{x: g.Next(), mu: g.Next()}
	offset := g.Next()
	f.scaled, f.eta, f.lik = g.Next(), g.Next(), g.Next()
	lower := 0.0

	f.plan = &executor.Plan{
		Options: opts,
		Steps: []executor.Step{
			{ID: f.x, Role: node.Data, Name: "x", Value: cty.ListVal([]cty.Value{cty.NumberIntVal(1), cty.NumberIntVal(2)})},
			{ID: f.mu, Role: node.Variable, Name: "mu", Bounds: node.Bounds{Lower: &lower}},
			{ID: offset, Role: node.Data, Value: cty.NumberFloatVal(0.1)},
			{ID: f.scaled, Role: node.Operation, Name: "scaled", Op: "multiply", Inputs: []nodeid.ID{f.mu, f.x}},
			{ID: f.eta, Role: node.Operation, Name: "eta", Op: "add", Inputs: []nodeid.ID{f.scaled, offset}},
			{ID: f.lik, Role: node.Distribution, Name: "lik", Family: "normal", Inputs: []nodeid.ID{f.eta},
				Params: map[string]nodeid.ID{"mean": f.eta}},
		},
	}
	return f
}

func floats(t *testing.T, v cty.Value) []float64 {
	t.Helper()
	var out []float64
	for it := v.ElementIterator(); it.Next(); {
		_, el := it.Element()
		f, _ := el.AsBigFloat().Float64()
		out = append(out, f)
	}
	return out
}

func TestEvaluate(t *testing.T) {
	for _, compile := range []bool{false, true} {
		f := newFixture(config.Options{Precision: config.PrecisionDouble, CoreCount: 2, Compile: compile})
		x, err := New(handlers.Default()).Define(testCtx(), f.plan)
		require.NoError(t, err)
		assert.Equal(t, compile, x.(*Executable).Compiled())
		assert.Same(t, f.plan, x.Plan())

		values, err := x.Evaluate(testCtx(), map[nodeid.ID]cty.Value{f.mu: cty.NumberIntVal(3)})
		require.NoError(t, err)

		assert.InDeltaSlice(t, []float64{3, 6}, floats(t, values[f.scaled]), 1e-12)
		assert.InDeltaSlice(t, []float64{3.1, 6.1}, floats(t, values[f.eta]), 1e-12)
		_, hasDensity := values[f.lik]
		assert.False(t, hasDensity, "densities are not evaluated")
	}
}

func TestEvaluate_SinglePrecisionRounds(t *testing.T) {
	f := newFixture(config.Options{Precision: config.PrecisionSingle, CoreCount: 1})
	x, err := New(handlers.Default()).Define(testCtx(), f.plan)
	require.NoError(t, err)

	values, err := x.Evaluate(testCtx(), map[nodeid.ID]cty.Value{f.mu: cty.NumberIntVal(1)})
	require.NoError(t, err)

	got := floats(t, values[f.eta])
	assert.Equal(t, float64(float32(float32(1)+float32(0.1))), got[0])
	assert.NotEqual(t, 1.1, got[0])
}

func TestEvaluate_Errors(t *testing.T) {
	f := newFixture(config.Options{Precision: config.PrecisionDouble, CoreCount: 4})
	x, err := New(handlers.Default()).Define(testCtx(), f.plan)
	require.NoError(t, err)

	_, err = x.Evaluate(testCtx(), nil)
	assert.ErrorIs(t, err, executor.ErrMissingAssignment)

	_, err = x.Evaluate(testCtx(), map[nodeid.ID]cty.Value{f.mu: cty.NumberIntVal(-1)})
	assert.ErrorIs(t, err, executor.ErrOutOfBounds)

	_, err = x.Evaluate(testCtx(), map[nodeid.ID]cty.Value{f.mu: cty.NumberIntVal(1), f.x: cty.NumberIntVal(1)})
	assert.ErrorIs(t, err, executor.ErrUnexpectedAssignment)
}

func TestDefine_Rejects(t *testing.T) {
	engine := New(handlers.Default())

	testCases := []struct {
		name    string
		mutate  func(f *fixture)
		wantErr error
	}{
		{
			name:    "unsupported precision",
			mutate:  func(f *fixture) { f.plan.Options.Precision = "half" },
			wantErr: executor.ErrUnsupportedPrecision,
		},
		{
			name:    "no cores",
			mutate:  func(f *fixture) { f.plan.Options.CoreCount = 0 },
			wantErr: executor.ErrInvalidCoreCount,
		},
		{
			name:    "unknown operator",
			mutate:  func(f *fixture) { f.plan.Steps[3].Op = "softmax" },
			wantErr: executor.ErrUnknownOperator,
		},
		{
			name:    "wrong arity",
			mutate:  func(f *fixture) { f.plan.Steps[3].Op = "negate" },
			wantErr: executor.ErrArity,
		},
		{
			name: "unordered steps",
			mutate: func(f *fixture) {
				f.plan.Steps[3], f.plan.Steps[4] = f.plan.Steps[4], f.plan.Steps[3]
			},
			wantErr: executor.ErrUnorderedPlan,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(config.Options{Precision: config.PrecisionDouble, CoreCount: 1})
			tc.mutate(f)
			_, err := engine.Define(testCtx(), f.plan)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

package lowering

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/gretago/internal/builder"
	"github.com/specialistvlad/gretago/internal/config"
	"github.com/specialistvlad/gretago/internal/ctxlog"
	"github.com/specialistvlad/gretago/internal/dag"
	"github.com/specialistvlad/gretago/internal/executor"
	"github.com/specialistvlad/gretago/internal/localsession"
	"github.com/specialistvlad/gretago/internal/node"
	"github.com/specialistvlad/gretago/internal/nodeid"
	"github.com/specialistvlad/gretago/internal/registry"
	"github.com/specialistvlad/gretago/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

var planComparers = cmp.Options{
	cmp.Comparer(func(a, b cty.Value) bool { return a.RawEquals(b) }),
	cmp.Comparer(func(a, b nodeid.ID) bool { return a == b }),
}

var defaultOpts = config.Options{Precision: config.PrecisionDouble, CoreCount: 1}

func testCtx() context.Context {
	return ctxlog.WithLogger(context.Background(), ctxlog.Discard())
}

type model struct {
	reg             *registry.Registry
	mu, y, eta, lik *node.Node
	graph           *builder.Graph
}

func newLocalSession(t *testing.T) session.Session {
	t.Helper()
	sess, err := (&localsession.SessionFactory{}).NewSession(testCtx())
	require.NoError(t, err)
	return sess
}

func newModel(t *testing.T, op string) *model {
	t.Helper()
	m := &model{reg: registry.New()}
	var err error
	m.mu, err = m.reg.Variable("mu", node.Bounds{})
	require.NoError(t, err)
	m.y, err = m.reg.Data("y", cty.NumberIntVal(2))
	require.NoError(t, err)
	m.eta, err = m.reg.Operation("eta", op, m.mu.ID())
	require.NoError(t, err)
	m.lik, err = m.reg.Distribution("lik", "normal", map[string]nodeid.ID{"mean": m.eta.ID()}, m.y.ID())
	require.NoError(t, err)

	m.graph, err = builder.Build(testCtx(), m.reg, m.reg.NonData())
	require.NoError(t, err)
	return m
}

func TestLower(t *testing.T) {
	m := newModel(t, "negate")
	sess := newLocalSession(t)

	lowered, err := Lower(testCtx(), sess, m.graph, defaultOpts)
	require.NoError(t, err)

	ids := make([]nodeid.ID, 0, len(lowered.Plan.Steps))
	for _, s := range lowered.Plan.Steps {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []nodeid.ID{m.mu.ID(), m.eta.ID(), m.lik.ID(), m.y.ID()}, ids)

	assert.Equal(t, []Edge{
		{From: m.mu.ID(), To: m.eta.ID()},
		{From: m.eta.ID(), To: m.lik.ID()},
		{From: m.lik.ID(), To: m.y.ID(), Target: true},
	}, lowered.Adjacency)

	values, err := lowered.Executable.Evaluate(testCtx(), map[nodeid.ID]cty.Value{m.mu.ID(): cty.NumberIntVal(3)})
	require.NoError(t, err)
	assert.True(t, values[m.eta.ID()].RawEquals(cty.NumberFloatVal(-3)))
}

func TestLower_LogsSession(t *testing.T) {
	m := newModel(t, "negate")
	sess := newLocalSession(t)

	var buf bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	_, err := Lower(ctx, sess, m.graph, defaultOpts)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `msg="Model lowered."`)
	assert.Contains(t, buf.String(), "session="+sess.ID())
}

func TestLower_IsIdempotent(t *testing.T) {
	m := newModel(t, "negate")
	sess := newLocalSession(t)

	first, err := Lower(testCtx(), sess, m.graph, defaultOpts)
	require.NoError(t, err)
	second, err := Lower(testCtx(), sess, m.graph, defaultOpts)
	require.NoError(t, err)

	if diff := cmp.Diff(first.Plan, second.Plan, planComparers); diff != "" {
		t.Errorf("plans differ between lowerings (-first +second):\n%s", diff)
	}
	assert.Equal(t, first.Adjacency, second.Adjacency)
	assert.Equal(t, 1, sess.Fragments(), "each lowering starts from a reset session")
}

func TestLower_EngineRejection(t *testing.T) {
	m := newModel(t, "softmax")

	_, err := Lower(testCtx(), newLocalSession(t), m.graph, defaultOpts)
	require.Error(t, err)

	var lowErr *LoweringError
	require.ErrorAs(t, err, &lowErr)
	assert.ErrorIs(t, err, ErrLowering)
	assert.ErrorIs(t, err, executor.ErrUnknownOperator)

	m = newModel(t, "negate")
	_, err = Lower(testCtx(), newLocalSession(t), m.graph, config.Options{Precision: "half", CoreCount: 1})
	assert.ErrorIs(t, err, executor.ErrUnsupportedPrecision)
	assert.ErrorIs(t, err, ErrLowering)
}

func TestLower_Cycle(t *testing.T) {
	reg := registry.New()
	x, err := reg.Variable("x", node.Bounds{})
	require.NoError(t, err)
	neg, err := reg.Operation("neg", "negate", x.ID())
	require.NoError(t, err)
	// x is scored by a density whose mean is derived from x itself.
	_, err = reg.Distribution("loop", "normal", map[string]nodeid.ID{"mean": neg.ID()}, x.ID())
	require.NoError(t, err)

	g, err := builder.Build(testCtx(), reg, reg.NonData())
	require.NoError(t, err)

	_, err = Lower(testCtx(), newLocalSession(t), g, defaultOpts)
	assert.ErrorIs(t, err, ErrLowering)
	assert.ErrorIs(t, err, dag.ErrCycle)
}

func TestLower_ClosedSession(t *testing.T) {
	m := newModel(t, "negate")
	sess := newLocalSession(t)
	require.NoError(t, sess.Close(testCtx()))

	_, err := Lower(testCtx(), sess, m.graph, defaultOpts)
	assert.ErrorIs(t, err, localsession.ErrClosed)
}

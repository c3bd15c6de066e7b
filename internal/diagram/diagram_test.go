package diagram

import (
	"testing"

	"github.com/awalterschulze/gographviz"
	"github.com/specialistvlad/gretago/internal/lowering"
	"github.com/specialistvlad/gretago/internal/node"
	"github.com/specialistvlad/gretago/internal/nodeid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type fakeModel struct {
	nodes []*node.Node
	edges []lowering.Edge
}

func (f *fakeModel) Nodes() []*node.Node { return f.nodes }

func (f *fakeModel) Adjacency() []lowering.Edge { return f.edges }

func (f *fakeModel) Label(id nodeid.ID) string {
	for _, n := range f.nodes {
		if n.ID() == id {
			return n.Label()
		}
	}
	return ""
}

func newFakeModel() *fakeModel {
	g := nodeid.NewGenerator()
	mu := node.NewVariable(g.Next(), "mu", node.Bounds{})
	y := node.NewData(g.Next(), "y", cty.NumberIntVal(1))
	lik := node.NewDistribution(g.Next(), "lik", "normal", map[string]nodeid.ID{"mean": mu.ID()}, y.ID())
	return &fakeModel{
		nodes: []*node.Node{mu, y, lik},
		edges: []lowering.Edge{
			{From: mu.ID(), To: lik.ID()},
			{From: lik.ID(), To: y.ID(), Target: true},
		},
	}
}

func attr(attrs gographviz.Attrs, name string) string {
	return attrs[gographviz.Attr(name)]
}

func TestBuild(t *testing.T) {
	g, err := Build(newFakeModel())
	require.NoError(t, err)

	require.Len(t, g.Nodes.Nodes, 3)
	mu := g.Nodes.Lookup["n1"]
	require.NotNil(t, mu)
	assert.Equal(t, `"mu"`, attr(mu.Attrs, "label"))
	assert.Equal(t, "circle", attr(mu.Attrs, "shape"))
	assert.Equal(t, "square", attr(g.Nodes.Lookup["n2"].Attrs, "shape"))
	assert.Equal(t, "diamond", attr(g.Nodes.Lookup["n3"].Attrs, "shape"))

	require.Len(t, g.Edges.Edges, 2)
	param, target := g.Edges.Edges[0], g.Edges.Edges[1]
	assert.Equal(t, "n1", param.Src)
	assert.Equal(t, "n3", param.Dst)
	assert.Equal(t, `"mean"`, attr(param.Attrs, "label"))
	assert.Empty(t, attr(param.Attrs, "style"))

	assert.Equal(t, "n3", target.Src)
	assert.Equal(t, "n2", target.Dst)
	assert.Equal(t, "dashed", attr(target.Attrs, "style"))
}

func TestDOT(t *testing.T) {
	out, err := DOT(newFakeModel())
	require.NoError(t, err)
	assert.Contains(t, out, "digraph model")
	assert.Contains(t, out, "rankdir=LR")
	assert.Contains(t, out, "n1->n3")
}

func TestBuild_DanglingEdge(t *testing.T) {
	m := newFakeModel()
	m.edges = append(m.edges, lowering.Edge{From: nodeid.NewGenerator().Next(), To: m.nodes[0].ID()})
	_, err := Build(m)
	assert.ErrorContains(t, err, "outside the diagram")
}

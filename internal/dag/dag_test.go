package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode("a")
	assert.Len(t, g.nodes, 1)
	nodeA, ok := g.nodes["a"]
	require.True(t, ok)
	assert.Equal(t, "a", nodeA.id)
	assert.NotNil(t, nodeA.deps)
	assert.NotNil(t, nodeA.dependents)

	g.AddNode("a") // Test idempotency
	assert.Len(t, g.nodes, 1)

	g.AddNode("b")
	assert.Len(t, g.nodes, 2)
	_, ok = g.nodes["b"]
	assert.True(t, ok)
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		err := g.AddEdge("a", "b") // b depends on a
		require.NoError(t, err)

		nodeA := g.nodes["a"]
		nodeB := g.nodes["b"]

		assert.Contains(t, nodeA.dependents, "b")
		assert.Equal(t, nodeB, nodeA.dependents["b"])
		assert.Contains(t, nodeB.deps, "a")
		assert.Equal(t, nodeA, nodeB.deps["a"])
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		err := g.AddEdge("dne", "a")
		assert.ErrorIs(t, err, ErrNodeNotFound)
		assert.ErrorContains(t, err, "source")

		err = g.AddEdge("a", "dne")
		assert.ErrorIs(t, err, ErrNodeNotFound)
		assert.ErrorContains(t, err, "destination")

		err = g.AddEdge("a", "a")
		assert.ErrorIs(t, err, ErrSelfEdge)
	})
}

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		g := New()
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("graph with nodes but no edges has no cycles", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("valid dag has no cycles", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		g.AddNode("d")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("a", "c")) // Transitive edge
		require.NoError(t, g.AddEdge("c", "d"))
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("simple direct cycle is detected", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "a")) // Cycle
		err := g.DetectCycles()
		assert.ErrorIs(t, err, ErrCycle)
		assert.ErrorContains(t, err, "node 'a'")
	})

	t.Run("longer cycle is detected", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		g.AddNode("d")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("c", "d"))
		require.NoError(t, g.AddEdge("d", "a")) // Cycle back to the start
		err := g.DetectCycles()
		assert.Error(t, err)
		assert.ErrorContains(t, err, "cycle detected")
	})

	t.Run("cycle in a disjoint component is detected", func(t *testing.T) {
		g := New()
		// Component 1 (valid)
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))

		// Component 2 (has a cycle)
		g.AddNode("x")
		g.AddNode("y")
		g.AddNode("z")
		require.NoError(t, g.AddEdge("x", "y"))
		require.NoError(t, g.AddEdge("y", "z"))
		require.NoError(t, g.AddEdge("z", "y")) // Cycle

		err := g.DetectCycles()
		assert.Error(t, err)
		assert.ErrorContains(t, err, "cycle detected")
	})
}

// diamond builds a -> b, a -> c, b -> d, c -> d plus an isolated node z.
func diamond(t *testing.T) *Graph {
	t.Helper()
	g := New()
	for _, id := range []string{"d", "c", "b", "a", "z"} {
		g.AddNode(id)
	}
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("a", "c"))
	require.NoError(t, g.AddEdge("b", "d"))
	require.NoError(t, g.AddEdge("c", "d"))
	return g
}

func TestComponents(t *testing.T) {
	t.Run("edges connect regardless of direction", func(t *testing.T) {
		g := New()
		for _, id := range []string{"m", "dist", "y", "lonely"} {
			g.AddNode(id)
		}
		// m is a parameter of dist and dist scores y: m and y only meet via dist.
		require.NoError(t, g.AddEdge("m", "dist"))
		require.NoError(t, g.AddEdge("dist", "y"))

		assignment, count := g.Components()
		assert.Equal(t, 2, count)
		assert.Equal(t, assignment["m"], assignment["dist"])
		assert.Equal(t, assignment["dist"], assignment["y"])
		assert.NotEqual(t, assignment["m"], assignment["lonely"])
	})

	t.Run("indices follow the smallest id", func(t *testing.T) {
		assignment, count := diamond(t).Components()
		assert.Equal(t, 2, count)
		assert.Equal(t, map[string]int{"a": 0, "b": 0, "c": 0, "d": 0, "z": 1}, assignment)
	})

	t.Run("empty graph", func(t *testing.T) {
		assignment, count := New().Components()
		assert.Zero(t, count)
		assert.Empty(t, assignment)
	})
}

func TestTopologicalSort(t *testing.T) {
	order, err := diamond(t).TopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "z"}, order)

	g := diamond(t)
	require.NoError(t, g.AddEdge("d", "a"))
	_, err = g.TopologicalSort()
	assert.ErrorIs(t, err, ErrCycle)
	assert.ErrorContains(t, err, "a, b, c, d")
}

func TestEdgesAndNeighbours(t *testing.T) {
	g := diamond(t)
	assert.Equal(t, []Edge{
		{From: "a", To: "b"},
		{From: "a", To: "c"},
		{From: "b", To: "d"},
		{From: "c", To: "d"},
	}, g.Edges())

	deps, err := g.Dependencies("d")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, deps)

	dependents, err := g.Dependents("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, dependents)

	_, err = g.Dependents("nope")
	assert.ErrorIs(t, err, ErrNodeNotFound)

	assert.True(t, g.Has("z"))
	assert.Equal(t, 5, g.Len())
	assert.Equal(t, []string{"a", "b", "c", "d", "z"}, g.Nodes())
}

package inmemorytopology

import (
	"sync"
	"testing"

	"github.com/specialistvlad/gretago/internal/node"
	"github.com/specialistvlad/gretago/internal/nodeid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndGetNode(t *testing.T) {
	s := New()
	g := nodeid.NewGenerator()
	testNode := node.NewVariable(g.Next(), "mu", node.Bounds{})

	require.NoError(t, s.AddNode(testNode))

	retrieved, ok := s.GetNode(testNode.ID())
	require.True(t, ok)
	assert.Equal(t, testNode, retrieved)

	// Idempotent for the same node.
	require.NoError(t, s.AddNode(testNode))
	assert.Equal(t, 1, s.Len())

	// A different node under the same id is rejected.
	impostor := node.NewVariable(testNode.ID(), "sigma", node.Bounds{})
	assert.ErrorIs(t, s.AddNode(impostor), ErrDuplicateNode)
}

func TestDependencies(t *testing.T) {
	s := New()
	g := nodeid.NewGenerator()
	a := node.NewVariable(g.Next(), "a", node.Bounds{})
	b := node.NewOperation(g.Next(), "b", "negate", []nodeid.ID{a.ID()})
	require.NoError(t, s.AddNode(a))
	require.NoError(t, s.AddNode(b))

	require.NoError(t, s.AddDependency(a.ID(), b.ID()))

	parents, err := s.DependenciesOf(b.ID())
	require.NoError(t, err)
	assert.Equal(t, []nodeid.ID{a.ID()}, parents)

	children, err := s.DependentsOf(a.ID())
	require.NoError(t, err)
	assert.Equal(t, []nodeid.ID{b.ID()}, children)

	none, err := s.DependenciesOf(a.ID())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAddDependency_Errors(t *testing.T) {
	s := New()
	g := nodeid.NewGenerator()
	a := node.NewVariable(g.Next(), "a", node.Bounds{})
	require.NoError(t, s.AddNode(a))
	missing := g.Next()

	assert.ErrorIs(t, s.AddDependency(missing, a.ID()), ErrNodeNotFound)
	assert.ErrorIs(t, s.AddDependency(a.ID(), missing), ErrNodeNotFound)
	assert.ErrorIs(t, s.AddDependency(a.ID(), a.ID()), ErrSelfLink)

	_, err := s.DependentsOf(missing)
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestAllNodes_CreationOrder(t *testing.T) {
	s := New()
	g := nodeid.NewGenerator()
	first := node.NewVariable(g.Next(), "first", node.Bounds{})
	second := node.NewVariable(g.Next(), "second", node.Bounds{})
	third := node.NewVariable(g.Next(), "third", node.Bounds{})

	// Insert out of order; the snapshot is sorted by id.
	for _, n := range []*node.Node{third, first, second} {
		require.NoError(t, s.AddNode(n))
	}

	assert.Equal(t, []*node.Node{first, second, third}, s.AllNodes())
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	g := nodeid.NewGenerator()
	root := node.NewVariable(g.Next(), "root", node.Bounds{})
	require.NoError(t, s.AddNode(root))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			child := node.NewOperation(g.Next(), "", "negate", []nodeid.ID{root.ID()})
			assert.NoError(t, s.AddNode(child))
			assert.NoError(t, s.AddDependency(root.ID(), child.ID()))
			_, _ = s.DependentsOf(root.ID())
		}()
	}
	wg.Wait()

	children, err := s.DependentsOf(root.ID())
	require.NoError(t, err)
	assert.Len(t, children, 16)
}

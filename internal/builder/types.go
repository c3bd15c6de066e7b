package builder

import (
	"maps"
	"slices"

	"github.com/specialistvlad/gretago/internal/dag"
	"github.com/specialistvlad/gretago/internal/node"
	"github.com/specialistvlad/gretago/internal/nodeid"
)

// NodeSet is the set of discovered nodes, unique by id and sorted by id.
type NodeSet struct {
	nodes []*node.Node
	index map[nodeid.ID]*node.Node
}

func newNodeSet(nodes []*node.Node) *NodeSet {
	s := &NodeSet{
		nodes: slices.Clone(nodes),
		index: make(map[nodeid.ID]*node.Node, len(nodes)),
	}
	slices.SortFunc(s.nodes, func(a, b *node.Node) int { return a.ID().Compare(b.ID()) })
	for _, n := range s.nodes {
		s.index[n.ID()] = n
	}
	return s
}

// Len returns the number of nodes in the set.
func (s *NodeSet) Len() int { return len(s.nodes) }

// Nodes returns the nodes sorted by id.
func (s *NodeSet) Nodes() []*node.Node { return slices.Clone(s.nodes) }

// IDs returns the node ids in sorted order.
func (s *NodeSet) IDs() []nodeid.ID {
	ids := make([]nodeid.ID, len(s.nodes))
	for i, n := range s.nodes {
		ids[i] = n.ID()
	}
	return ids
}

// Contains reports whether id is in the set.
func (s *NodeSet) Contains(id nodeid.ID) bool {
	_, ok := s.index[id]
	return ok
}

// Get returns the node with the given id.
func (s *NodeSet) Get(id nodeid.ID) (*node.Node, bool) {
	n, ok := s.index[id]
	return n, ok
}

// Components is the assignment of every discovered node to a connected
// component. Component indices run from 0 to Count()-1.
type Components struct {
	assignment map[nodeid.ID]int
	members    [][]nodeid.ID
}

// Count returns the number of components.
func (c *Components) Count() int { return len(c.members) }

// Of returns the component index of id.
func (c *Components) Of(id nodeid.ID) (int, bool) {
	i, ok := c.assignment[id]
	return i, ok
}

// Members returns the sorted ids of component i.
func (c *Components) Members(i int) []nodeid.ID {
	if i < 0 || i >= len(c.members) {
		return nil
	}
	return slices.Clone(c.members[i])
}

// Assignment returns a copy of the node id to component index mapping.
func (c *Components) Assignment() map[nodeid.ID]int {
	return maps.Clone(c.assignment)
}

// Graph is the outcome of a successful build.
type Graph struct {
	// Seeds are the ids the build started from, in the order given.
	Seeds []nodeid.ID
	// Nodes is the discovered node set.
	Nodes *NodeSet
	// Roles maps every discovered node to its role.
	Roles map[nodeid.ID]node.Role
	// Components partitions Nodes.
	Components *Components
	// Topology holds the directed parent -> child links between Nodes, keyed
	// by the string form of the node ids.
	Topology *dag.Graph
}

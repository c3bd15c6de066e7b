package builder

import (
	"fmt"

	"github.com/specialistvlad/gretago/internal/dag"
	"github.com/specialistvlad/gretago/internal/nodeid"
)

// Partition splits the node set into weakly connected components. It also
// returns the directed topology the components were computed from.
func Partition(src Source, set *NodeSet) (*Components, *dag.Graph, error) {
	topology, err := Topology(src, set)
	if err != nil {
		return nil, nil, err
	}
	return components(set, topology), topology, nil
}

// Topology mirrors the parent -> child links among the nodes of set into a
// dag.Graph keyed by id strings. A link to a node outside the set returns
// ErrForeignLink.
func Topology(src Source, set *NodeSet) (*dag.Graph, error) {
	g := dag.New()
	for _, id := range set.IDs() {
		g.AddNode(id.String())
	}

	for _, id := range set.IDs() {
		children, err := src.ChildrenOf(id)
		if err != nil {
			return nil, fmt.Errorf("reading children of %s: %w", id, err)
		}
		for _, child := range children {
			if !set.Contains(child) {
				return nil, fmt.Errorf("%w: %s -> %s", ErrForeignLink, id, child)
			}
			if err := g.AddEdge(id.String(), child.String()); err != nil {
				return nil, err
			}
		}

		parents, err := src.ParentsOf(id)
		if err != nil {
			return nil, fmt.Errorf("reading parents of %s: %w", id, err)
		}
		for _, parent := range parents {
			if !set.Contains(parent) {
				return nil, fmt.Errorf("%w: %s -> %s", ErrForeignLink, parent, id)
			}
		}
	}
	return g, nil
}

func components(set *NodeSet, topology *dag.Graph) *Components {
	byKey, count := topology.Components()

	c := &Components{
		assignment: make(map[nodeid.ID]int, set.Len()),
		members:    make([][]nodeid.ID, count),
	}
	// set.IDs is sorted, so every member list is sorted as well.
	for _, id := range set.IDs() {
		i := byKey[id.String()]
		c.assignment[id] = i
		c.members[i] = append(c.members[i], id)
	}
	return c
}

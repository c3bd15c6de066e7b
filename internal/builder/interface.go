package builder

import (
	"github.com/specialistvlad/gretago/internal/node"
	"github.com/specialistvlad/gretago/internal/nodeid"
)

// Source gives the builder read access to nodes and their structural links.
//
// # Consistency
//
// The builder assumes a consistent snapshot: every id returned by ParentsOf
// or ChildrenOf must resolve through Node. *registry.Registry implements
// Source.
type Source interface {
	// Node returns the node with the given id.
	Node(id nodeid.ID) (*node.Node, bool)

	// ParentsOf returns the ids the given node depends on.
	ParentsOf(id nodeid.ID) ([]nodeid.ID, error)

	// ChildrenOf returns the ids depending on the given node.
	ChildrenOf(id nodeid.ID) ([]nodeid.ID, error)
}

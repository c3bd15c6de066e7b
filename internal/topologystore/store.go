// Package topologystore defines the interface for storing and retrieving the
// structure of a model graph: its nodes and the parent -> child links
// between them.
//
// # Why Topology Store Exists
//
// Nodes are immutable once created, but a node keeps gaining children for as
// long as the caller keeps building on top of it (a variable created first is
// later used as the mean of a distribution). The topology store owns those
// links so that node values never change after construction.
//
// # Lifecycle and Usage
//
// The topology store is:
//  1. **Created** once per registry
//  2. **Populated** as the caller creates nodes (node + incoming links at once)
//  3. **Read** by graph discovery and partitioning during every model build
//
// Lookups never block on I/O, so the interface carries no context.
package topologystore

import (
	"github.com/specialistvlad/gretago/internal/node"
	"github.com/specialistvlad/gretago/internal/nodeid"
)

// Store is the interface for managing the topology of a model graph.
//
// # Thread-Safety Requirements
//
// Implementations MUST be safe for concurrent reads and writes: callers may
// create nodes from several goroutines while another one builds a model.
type Store interface {
	// AddNode registers a node. Adding the same node twice is a no-op;
	// adding a different node under an existing id is an error.
	AddNode(n *node.Node) error

	// AddDependency records that `to` depends on `from` (from is a parent of
	// to). Both nodes must already exist and self links are rejected.
	AddDependency(from, to nodeid.ID) error

	// GetNode retrieves a single node by id.
	GetNode(id nodeid.ID) (*node.Node, bool)

	// AllNodes returns every node in creation order.
	AllNodes() []*node.Node

	// DependenciesOf returns the parents of id in creation order.
	DependenciesOf(id nodeid.ID) ([]nodeid.ID, error)

	// DependentsOf returns the children of id in creation order.
	DependentsOf(id nodeid.ID) ([]nodeid.ID, error)

	// Len returns the number of stored nodes.
	Len() int
}

// Package nodestore defines the interface for storing and retrieving the
// mutable evaluation state of nodes while an executable runs.
//
// # Why Node Store Exists
//
// The node store isolates per-evaluation state (the value each step produced
// or the error it failed with) from the immutable graph structure managed by
// topologystore. Steps of one dependency level are evaluated concurrently, so
// every implementation must accept concurrent reads and writes.
//
// # Lifecycle and Usage
//
// A store is created for a single Evaluate call, filled level by level as
// steps complete, read by later steps to collect their operands, and
// discarded once the values have been returned to the caller.
package nodestore

import (
	"github.com/specialistvlad/gretago/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// Store is the interface for managing the evaluation state of nodes.
//
// Implementations MUST be safe for concurrent use.
type Store interface {
	// SetValue records the value a step produced.
	SetValue(id nodeid.ID, value cty.Value)

	// Value returns the recorded value of a node and whether one exists.
	// Distribution steps never have a value.
	Value(id nodeid.ID) (cty.Value, bool)

	// SetError records why a step failed.
	SetError(id nodeid.ID, err error)

	// Error returns the recorded failure of a node, or nil.
	Error(id nodeid.ID) error

	// Values returns a copy of every recorded value.
	Values() map[nodeid.ID]cty.Value
}

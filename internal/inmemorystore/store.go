package inmemorystore

import (
	"sync"

	"github.com/specialistvlad/gretago/internal/nodeid"
	"github.com/specialistvlad/gretago/internal/nodestore"
	"github.com/zclconf/go-cty/cty"
)

// Store is an in-memory implementation of nodestore.Store using sync.Map
// for fine-grained concurrent access without global lock contention.
//
// The key space is known up front (the steps of a plan) and every key is
// written once, which is the access pattern sync.Map is optimized for.
type Store struct {
	values sync.Map // Key: nodeid.ID, Value: cty.Value
	errors sync.Map // Key: nodeid.ID, Value: error
}

var _ nodestore.Store = (*Store)(nil)

// New creates a new, empty in-memory evaluation state store.
func New() *Store {
	return &Store{}
}

// SetValue records the value a step produced.
func (s *Store) SetValue(id nodeid.ID, value cty.Value) {
	s.values.Store(id, value)
}

// Value returns the recorded value of a node.
func (s *Store) Value(id nodeid.ID) (cty.Value, bool) {
	v, ok := s.values.Load(id)
	if !ok {
		return cty.NilVal, false
	}
	return v.(cty.Value), true
}

// SetError records the failure of a step.
func (s *Store) SetError(id nodeid.ID, err error) {
	s.errors.Store(id, err)
}

// Error returns the recorded failure of a node, or nil.
func (s *Store) Error(id nodeid.ID) error {
	err, ok := s.errors.Load(id)
	if !ok {
		return nil // If not found, there is no error.
	}
	return err.(error)
}

// Values returns a copy of every recorded value.
func (s *Store) Values() map[nodeid.ID]cty.Value {
	out := make(map[nodeid.ID]cty.Value)
	s.values.Range(func(k, v any) bool {
		out[k.(nodeid.ID)] = v.(cty.Value)
		return true
	})
	return out
}

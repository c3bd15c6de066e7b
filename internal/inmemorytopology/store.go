package inmemorytopology

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/specialistvlad/gretago/internal/node"
	"github.com/specialistvlad/gretago/internal/nodeid"
	"github.com/specialistvlad/gretago/internal/topologystore"
)

// Sentinel errors returned by the store.
var (
	ErrNodeNotFound  = errors.New("node not found in topology")
	ErrDuplicateNode = errors.New("a different node with this id already exists")
	ErrSelfLink      = errors.New("self-referential link not allowed")
)

// Store implements the topologystore.Store interface using maps and a mutex
// for thread-safe concurrent access.
type Store struct {
	mu       sync.RWMutex
	nodes    map[nodeid.ID]*node.Node
	parents  map[nodeid.ID]map[nodeid.ID]struct{} // Key: node ID, Value: set of parent IDs
	children map[nodeid.ID]map[nodeid.ID]struct{} // Key: node ID, Value: set of child IDs
}

// New creates a new, empty in-memory topology store.
func New() topologystore.Store {
	return &Store{
		nodes:    make(map[nodeid.ID]*node.Node),
		parents:  make(map[nodeid.ID]map[nodeid.ID]struct{}),
		children: make(map[nodeid.ID]map[nodeid.ID]struct{}),
	}
}

// AddNode adds a new node to the store.
func (s *Store) AddNode(n *node.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, exists := s.nodes[n.ID()]; exists {
		if existing == n {
			// Adding the same node twice is not an error, it's idempotent.
			return nil
		}
		return fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID())
	}
	s.nodes[n.ID()] = n
	return nil
}

// AddDependency creates a parent -> child link.
func (s *Store) AddDependency(from, to nodeid.ID) error {
	if from == to {
		return fmt.Errorf("%w: %s -> %s", ErrSelfLink, from, to)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.nodes[from]; !exists {
		return fmt.Errorf("%w: parent %s", ErrNodeNotFound, from)
	}
	if _, exists := s.nodes[to]; !exists {
		return fmt.Errorf("%w: child %s", ErrNodeNotFound, to)
	}

	if s.parents[to] == nil {
		s.parents[to] = make(map[nodeid.ID]struct{})
	}
	s.parents[to][from] = struct{}{}

	if s.children[from] == nil {
		s.children[from] = make(map[nodeid.ID]struct{})
	}
	s.children[from][to] = struct{}{}
	return nil
}

// GetNode retrieves a single node by its id.
func (s *Store) GetNode(id nodeid.ID) (*node.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.nodes[id]
	return n, ok
}

// AllNodes returns a snapshot of all nodes, ordered by id.
func (s *Store) AllNodes() []*node.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nodes := slices.Collect(maps.Values(s.nodes))
	slices.SortFunc(nodes, func(a, b *node.Node) int { return a.ID().Compare(b.ID()) })
	return nodes
}

// DependenciesOf returns the ids of all parents of the given node.
func (s *Store) DependenciesOf(id nodeid.ID) ([]nodeid.ID, error) {
	return s.linked(id, s.parents)
}

// DependentsOf returns the ids of all children of the given node.
func (s *Store) DependentsOf(id nodeid.ID) ([]nodeid.ID, error) {
	return s.linked(id, s.children)
}

// Len returns the number of nodes in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

func (s *Store) linked(id nodeid.ID, index map[nodeid.ID]map[nodeid.ID]struct{}) ([]nodeid.ID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.nodes[id]; !exists {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}

	set, ok := index[id]
	if !ok {
		return []nodeid.ID{}, nil
	}
	ids := slices.Collect(maps.Keys(set))
	nodeid.Sort(ids)
	return ids, nil
}

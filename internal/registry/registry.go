package registry

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/specialistvlad/gretago/internal/inmemorytopology"
	"github.com/specialistvlad/gretago/internal/node"
	"github.com/specialistvlad/gretago/internal/nodeid"
	"github.com/specialistvlad/gretago/internal/topologystore"
	"github.com/zclconf/go-cty/cty"
)

// Registry holds every node created for one modelling session together with
// the topology linking them.
type Registry struct {
	ids   *nodeid.Generator
	store topologystore.Store

	// mu serialises node creation so that name checks and inserts are atomic.
	mu          sync.Mutex
	names       map[string]nodeid.ID
	distributed map[nodeid.ID]nodeid.ID // Key: target ID, Value: distribution ID
}

// New creates an empty Registry backed by an in-memory topology store.
func New() *Registry {
	return NewWithStore(inmemorytopology.New())
}

// NewWithStore creates an empty Registry on top of the given store.
func NewWithStore(store topologystore.Store) *Registry {
	return &Registry{
		ids:         nodeid.NewGenerator(),
		store:       store,
		names:       make(map[string]nodeid.ID),
		distributed: make(map[nodeid.ID]nodeid.ID),
	}
}

// Data creates an observed data node. The value must be a known number or a
// non-empty list of known numbers. An empty name creates an anonymous node.
func (r *Registry) Data(name string, value cty.Value) (*node.Node, error) {
	normalized, err := normalizeValue(value)
	if err != nil {
		return nil, fmt.Errorf("data %s: %w", display(name), err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.claimName(name); err != nil {
		return nil, err
	}
	n := node.NewData(r.ids.Next(), name, normalized)
	return n, r.insert(n, nil)
}

// Variable creates an unknown quantity with optional bounds.
func (r *Registry) Variable(name string, bounds node.Bounds) (*node.Node, error) {
	if err := checkBounds(bounds); err != nil {
		return nil, fmt.Errorf("variable %s: %w", display(name), err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.claimName(name); err != nil {
		return nil, err
	}
	n := node.NewVariable(r.ids.Next(), name, bounds)
	return n, r.insert(n, nil)
}

// Operation creates a deterministic transformation of existing nodes. The
// operator name is not interpreted here; the engine checks it at lowering.
func (r *Registry) Operation(name, op string, operands ...nodeid.ID) (*node.Node, error) {
	if op == "" {
		return nil, fmt.Errorf("operation %s: %w", display(name), ErrMissingOperator)
	}
	if len(operands) == 0 {
		return nil, fmt.Errorf("operation %s: %w", display(name), ErrNoOperands)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireNodes(operands...); err != nil {
		return nil, fmt.Errorf("operation %s: %w", display(name), err)
	}
	if err := r.claimName(name); err != nil {
		return nil, err
	}
	n := node.NewOperation(r.ids.Next(), name, op, operands)
	return n, r.insert(n, operands)
}

// Distribution creates a density over target, parameterised by existing
// nodes. The target must be a data or variable node without a distribution
// of its own.
func (r *Registry) Distribution(name, family string, params map[string]nodeid.ID, target nodeid.ID) (*node.Node, error) {
	if family == "" {
		return nil, fmt.Errorf("distribution %s: %w", display(name), ErrMissingFamily)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	paramIDs := slices.Collect(maps.Values(params))
	if err := r.requireNodes(paramIDs...); err != nil {
		return nil, fmt.Errorf("distribution %s: %w", display(name), err)
	}
	if err := r.checkTarget(target, params); err != nil {
		return nil, fmt.Errorf("distribution %s: %w", display(name), err)
	}
	if err := r.claimName(name); err != nil {
		return nil, err
	}

	n := node.NewDistribution(r.ids.Next(), name, family, params, target)
	if err := r.insert(n, n.Inputs()); err != nil {
		return nil, err
	}
	// The distribution is a parent of the node it scores.
	if err := r.store.AddDependency(n.ID(), target); err != nil {
		return nil, err
	}
	r.distributed[target] = n.ID()
	return n, nil
}

// Node returns the node with the given id.
func (r *Registry) Node(id nodeid.ID) (*node.Node, bool) {
	return r.store.GetNode(id)
}

// ParentsOf returns the ids of the nodes id depends on.
func (r *Registry) ParentsOf(id nodeid.ID) ([]nodeid.ID, error) {
	return r.store.DependenciesOf(id)
}

// ChildrenOf returns the ids of the nodes depending on id.
func (r *Registry) ChildrenOf(id nodeid.ID) ([]nodeid.ID, error) {
	return r.store.DependentsOf(id)
}

// Lookup finds a named node.
func (r *Registry) Lookup(name string) (*node.Node, bool) {
	r.mu.Lock()
	id, ok := r.names[name]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}
	return r.store.GetNode(id)
}

// DistributionOf returns the distribution scoring target, if any.
func (r *Registry) DistributionOf(target nodeid.ID) (*node.Node, bool) {
	r.mu.Lock()
	id, ok := r.distributed[target]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}
	return r.store.GetNode(id)
}

// Visible returns every node in creation order.
func (r *Registry) Visible() []*node.Node {
	return r.store.AllNodes()
}

// NonData returns the ids of all nodes that are not data, in creation order.
// These are the default seeds of a model build.
func (r *Registry) NonData() []nodeid.ID {
	var ids []nodeid.ID
	for _, n := range r.store.AllNodes() {
		if n.Role() != node.Data {
			ids = append(ids, n.ID())
		}
	}
	return ids
}

// Len returns the number of nodes created so far.
func (r *Registry) Len() int {
	return r.store.Len()
}

// insert stores n and links it to its parents. Callers hold r.mu.
func (r *Registry) insert(n *node.Node, parents []nodeid.ID) error {
	if err := r.store.AddNode(n); err != nil {
		return err
	}
	if n.Name() != "" {
		r.names[n.Name()] = n.ID()
	}
	for _, parent := range parents {
		if err := r.store.AddDependency(parent, n.ID()); err != nil {
			return err
		}
	}
	return nil
}

func display(name string) string {
	if name == "" {
		return "(anonymous)"
	}
	return fmt.Sprintf("'%s'", name)
}

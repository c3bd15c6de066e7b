// Package node defines the symbolic units a model graph is made of.
//
// A Node is immutable once created. Its role is an explicit tag and the
// role-specific metadata lives in typed fields that are only populated for
// the matching role. Structural links (parents and children) are not stored
// on the node: they are owned by the topology store of the registry that
// created it, which lets a node gain children after construction without
// being mutated.
package node

import (
	"maps"
	"slices"

	"github.com/specialistvlad/gretago/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// Role classifies a node.
type Role int

const (
	// RoleUnknown is the zero value and never valid on a constructed node.
	RoleUnknown Role = iota
	// Data is an observed, fixed value.
	Data
	// Variable is an unknown quantity the model is defined over.
	Variable
	// Distribution scores the value of its target node.
	Distribution
	// Operation is a deterministic transformation of its operands.
	Operation
)

// Roles lists every valid role in declaration order.
var Roles = []Role{Data, Variable, Distribution, Operation}

var roleNames = map[Role]string{
	Data:         "data",
	Variable:     "variable",
	Distribution: "distribution",
	Operation:    "operation",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// ParseRole maps a role name back to its Role.
func ParseRole(s string) (Role, bool) {
	for r, name := range roleNames {
		if name == s {
			return r, true
		}
	}
	return RoleUnknown, false
}

// Bounds constrains the support of a variable. Nil ends are unbounded.
type Bounds struct {
	Lower *float64
	Upper *float64
}

// Node is a single vertex of a model graph.
type Node struct {
	id   nodeid.ID
	role Role
	// name is the declared name, empty for anonymous nodes such as constants.
	name string

	// value is set for data nodes.
	value cty.Value
	// bounds is set for variable nodes.
	bounds Bounds
	// op and operands are set for operation nodes.
	op       string
	operands []nodeid.ID
	// family, params and target are set for distribution nodes.
	family string
	params map[string]nodeid.ID
	target nodeid.ID
}

// ID returns the unique identifier of the node.
func (n *Node) ID() nodeid.ID { return n.id }

// Role returns the declared role.
func (n *Node) Role() Role { return n.role }

// Name returns the declared name, or "" for anonymous nodes.
func (n *Node) Name() string { return n.name }

// Value returns the observed value of a data node.
func (n *Node) Value() cty.Value { return n.value }

// Bounds returns the support constraints of a variable node.
func (n *Node) Bounds() Bounds { return n.bounds }

// Op returns the operator name of an operation node.
func (n *Node) Op() string { return n.op }

// Operands returns the ordered operand ids of an operation node.
func (n *Node) Operands() []nodeid.ID { return slices.Clone(n.operands) }

// Family returns the distribution family name.
func (n *Node) Family() string { return n.family }

// Params returns the parameter name to parent id mapping of a distribution.
func (n *Node) Params() map[string]nodeid.ID { return maps.Clone(n.params) }

// ParamNames returns the parameter names of a distribution in sorted order.
func (n *Node) ParamNames() []string {
	return slices.Sorted(maps.Keys(n.params))
}

// Target returns the node a distribution scores.
func (n *Node) Target() nodeid.ID { return n.target }

// Inputs returns the ids this node depends on by construction: operands for
// operations and parameters (in name order) for distributions.
func (n *Node) Inputs() []nodeid.ID {
	switch n.role {
	case Operation:
		return n.Operands()
	case Distribution:
		inputs := make([]nodeid.ID, 0, len(n.params))
		for _, name := range n.ParamNames() {
			inputs = append(inputs, n.params[name])
		}
		return inputs
	default:
		return nil
	}
}

// Label returns a display label: the declared name, or the role and a short
// id for anonymous nodes.
func (n *Node) Label() string {
	if n.name != "" {
		return n.name
	}
	return n.role.String() + " " + n.id.Short()
}

// NewData creates a data node.
func NewData(id nodeid.ID, name string, value cty.Value) *Node {
	return &Node{id: id, role: Data, name: name, value: value}
}

// NewVariable creates a variable node.
func NewVariable(id nodeid.ID, name string, bounds Bounds) *Node {
	return &Node{id: id, role: Variable, name: name, bounds: bounds}
}

// NewOperation creates an operation node over the given operands.
func NewOperation(id nodeid.ID, name, op string, operands []nodeid.ID) *Node {
	return &Node{id: id, role: Operation, name: name, op: op, operands: slices.Clone(operands)}
}

// NewDistribution creates a distribution node scoring target.
func NewDistribution(id nodeid.ID, name, family string, params map[string]nodeid.ID, target nodeid.ID) *Node {
	return &Node{id: id, role: Distribution, name: name, family: family, params: maps.Clone(params), target: target}
}

// NewWithRole creates a bare node carrying an arbitrary role tag. It exists
// for stores and tests that need nodes without role metadata.
func NewWithRole(id nodeid.ID, name string, role Role) *Node {
	return &Node{id: id, role: role, name: name}
}

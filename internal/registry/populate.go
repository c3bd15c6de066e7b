package registry

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/specialistvlad/gretago/internal/config"
	"github.com/specialistvlad/gretago/internal/ctxlog"
	"github.com/specialistvlad/gretago/internal/node"
	"github.com/specialistvlad/gretago/internal/nodeid"
)

var (
	ErrDuplicateDeclaration = errors.New("declaration is defined more than once")
	ErrUndeclared           = errors.New("reference to an undeclared block")
	ErrDeclarationCycle     = errors.New("declarations reference each other in a cycle")
)

// Declared maps every declaration of a Definition to the node created for it.
type Declared map[nodeid.Ref]nodeid.ID

// Resolve maps references to node ids, failing on the first unknown one.
func (d Declared) Resolve(refs []nodeid.Ref) ([]nodeid.ID, error) {
	ids := make([]nodeid.ID, 0, len(refs))
	for _, ref := range refs {
		id, ok := d[ref]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUndeclared, ref)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// declaration is one block of a Definition, indexed by its reference.
type declaration struct {
	ref   nodeid.Ref
	build func(p *populator) (*node.Node, error)
}

type populator struct {
	reg      *Registry
	decls    map[nodeid.Ref]*declaration
	created  Declared
	visiting map[nodeid.Ref]bool
	path     []nodeid.Ref
}

// Populate creates a node for every declaration in def. Declarations may
// reference each other in any order; referenced ones are created first.
// Numeric constants used as operands or parameters become anonymous data
// nodes.
func (r *Registry) Populate(ctx context.Context, def *config.Definition) (Declared, error) {
	logger := ctxlog.FromContext(ctx)

	p := &populator{
		reg:      r,
		decls:    make(map[nodeid.Ref]*declaration),
		created:  make(Declared),
		visiting: make(map[nodeid.Ref]bool),
	}

	order, err := p.index(def)
	if err != nil {
		return nil, err
	}
	logger.Debug("Populating registry from definition.", "declarations", len(order))

	for _, ref := range order {
		if _, err := p.ensure(ref); err != nil {
			return nil, err
		}
	}

	logger.Debug("Registry populated.", "nodes", r.Len())
	return p.created, nil
}

// index records every declaration and returns their refs in file order,
// grouped by kind.
func (p *populator) index(def *config.Definition) ([]nodeid.Ref, error) {
	var order []nodeid.Ref
	add := func(ref nodeid.Ref, build func(p *populator) (*node.Node, error)) error {
		if _, exists := p.decls[ref]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateDeclaration, ref)
		}
		p.decls[ref] = &declaration{ref: ref, build: build}
		order = append(order, ref)
		return nil
	}

	for _, d := range def.Data {
		err := add(nodeid.NewRef("data", d.Name), func(p *populator) (*node.Node, error) {
			return p.reg.Data(d.Name, d.Value)
		})
		if err != nil {
			return nil, err
		}
	}
	for _, v := range def.Variables {
		err := add(nodeid.NewRef("variable", v.Name), func(p *populator) (*node.Node, error) {
			return p.reg.Variable(v.Name, node.Bounds{Lower: v.Lower, Upper: v.Upper})
		})
		if err != nil {
			return nil, err
		}
	}
	for _, o := range def.Operations {
		err := add(nodeid.NewRef("operation", o.Name), func(p *populator) (*node.Node, error) {
			operands := make([]nodeid.ID, 0, len(o.Operands))
			for _, operand := range o.Operands {
				id, err := p.operand(operand)
				if err != nil {
					return nil, err
				}
				operands = append(operands, id)
			}
			return p.reg.Operation(o.Name, o.Op, operands...)
		})
		if err != nil {
			return nil, err
		}
	}
	for _, d := range def.Distributions {
		err := add(nodeid.NewRef("distribution", d.Name), func(p *populator) (*node.Node, error) {
			target, err := p.ensure(d.Target)
			if err != nil {
				return nil, err
			}
			params := make(map[string]nodeid.ID, len(d.Params))
			for _, name := range slices.Sorted(maps.Keys(d.Params)) {
				id, err := p.operand(d.Params[name])
				if err != nil {
					return nil, err
				}
				params[name] = id
			}
			return p.reg.Distribution(d.Name, d.Family, params, target)
		})
		if err != nil {
			return nil, err
		}
	}
	return order, nil
}

// ensure returns the node id for ref, creating it (and whatever it
// references) on first use.
func (p *populator) ensure(ref nodeid.Ref) (nodeid.ID, error) {
	if id, ok := p.created[ref]; ok {
		return id, nil
	}
	decl, ok := p.decls[ref]
	if !ok {
		return nodeid.Zero, fmt.Errorf("%w: %s", ErrUndeclared, ref)
	}
	if p.visiting[ref] {
		return nodeid.Zero, fmt.Errorf("%w: %s", ErrDeclarationCycle, p.cyclePath(ref))
	}

	p.visiting[ref] = true
	p.path = append(p.path, ref)
	n, err := decl.build(p)
	p.path = p.path[:len(p.path)-1]
	delete(p.visiting, ref)
	if err != nil {
		return nodeid.Zero, fmt.Errorf("%s: %w", ref, err)
	}

	p.created[ref] = n.ID()
	return n.ID(), nil
}

func (p *populator) operand(o config.Operand) (nodeid.ID, error) {
	if o.IsRef() {
		return p.ensure(*o.Ref)
	}
	n, err := p.reg.Data("", o.Constant)
	if err != nil {
		return nodeid.Zero, err
	}
	return n.ID(), nil
}

func (p *populator) cyclePath(ref nodeid.Ref) string {
	start := 0
	for i, r := range p.path {
		if r == ref {
			start = i
			break
		}
	}
	parts := make([]string, 0, len(p.path)-start+1)
	for _, r := range p.path[start:] {
		parts = append(parts, r.String())
	}
	parts = append(parts, ref.String())
	return strings.Join(parts, " -> ")
}

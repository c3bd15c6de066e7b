package registry

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/gretago/internal/node"
	"github.com/specialistvlad/gretago/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Sentinel errors returned by the node constructors.
var (
	ErrDuplicateName      = errors.New("name is already used by another node")
	ErrUnknownParent      = errors.New("referenced node does not exist in this registry")
	ErrInvalidValue       = errors.New("data value must be a number or a non-empty list of numbers")
	ErrInvalidBounds      = errors.New("lower bound must be below upper bound")
	ErrMissingOperator    = errors.New("operator name is required")
	ErrNoOperands         = errors.New("at least one operand is required")
	ErrMissingFamily      = errors.New("distribution family is required")
	ErrInvalidTarget      = errors.New("distribution target must be a data or variable node")
	ErrAlreadyDistributed = errors.New("target already has a distribution")
	ErrInvalidOperand     = errors.New("a distribution has no value and cannot be an input")
)

// claimName rejects a name that is already taken. Anonymous names always pass.
func (r *Registry) claimName(name string) error {
	if name == "" {
		return nil
	}
	if existing, ok := r.names[name]; ok {
		return fmt.Errorf("%w: '%s' (node %s)", ErrDuplicateName, name, existing.Short())
	}
	return nil
}

func (r *Registry) requireNodes(ids ...nodeid.ID) error {
	for _, id := range ids {
		n, ok := r.store.GetNode(id)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownParent, id)
		}
		if n.Role() == node.Distribution {
			return fmt.Errorf("%w: %s", ErrInvalidOperand, n.Label())
		}
	}
	return nil
}

func (r *Registry) checkTarget(target nodeid.ID, params map[string]nodeid.ID) error {
	t, ok := r.store.GetNode(target)
	if !ok {
		return fmt.Errorf("%w: target %s", ErrUnknownParent, target)
	}
	if t.Role() != node.Data && t.Role() != node.Variable {
		return fmt.Errorf("%w: %s is a %s", ErrInvalidTarget, t.Label(), t.Role())
	}
	for name, id := range params {
		if id == target {
			return fmt.Errorf("%w: parameter '%s' is the target itself", ErrInvalidTarget, name)
		}
	}
	if existing, ok := r.distributed[target]; ok {
		return fmt.Errorf("%w: %s is scored by %s", ErrAlreadyDistributed, t.Label(), existing.Short())
	}
	return nil
}

// normalizeValue accepts numbers and sequences of numbers and returns them as
// cty.Number or cty.List(cty.Number).
func normalizeValue(v cty.Value) (cty.Value, error) {
	if v == cty.NilVal || v.IsNull() || !v.IsWhollyKnown() {
		return cty.NilVal, ErrInvalidValue
	}

	ty := v.Type()
	switch {
	case ty == cty.Number:
		return v, nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		if v.LengthInt() == 0 {
			return cty.NilVal, ErrInvalidValue
		}
		list, err := convert.Convert(v, cty.List(cty.Number))
		if err != nil {
			return cty.NilVal, fmt.Errorf("%w: %s", ErrInvalidValue, err)
		}
		for it := list.ElementIterator(); it.Next(); {
			if _, el := it.Element(); el.IsNull() {
				return cty.NilVal, ErrInvalidValue
			}
		}
		return list, nil
	default:
		return cty.NilVal, fmt.Errorf("%w: got %s", ErrInvalidValue, ty.FriendlyName())
	}
}

func checkBounds(b node.Bounds) error {
	if b.Lower != nil && b.Upper != nil && *b.Lower >= *b.Upper {
		return fmt.Errorf("%w: %g >= %g", ErrInvalidBounds, *b.Lower, *b.Upper)
	}
	return nil
}

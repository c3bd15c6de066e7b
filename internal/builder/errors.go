package builder

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the build phases.
var (
	// ErrEmptySeeds means there is nothing to build a model from.
	ErrEmptySeeds = errors.New("no nodes to build a model from: no seeds were given and none could be inferred")
	// ErrUnknownNode means a seed or a link points at a node the source does not know.
	ErrUnknownNode = errors.New("node not found in source")
	// ErrUnknownRole means a node carries a role outside the known four.
	ErrUnknownRole = errors.New("node has an unrecognised role")
	// ErrForeignLink means a discovered node links to a node outside the discovered set.
	ErrForeignLink = errors.New("link leaves the discovered node set")

	ErrMissingDensity  = errors.New("missing probability density")
	ErrMissingVariable = errors.New("missing unknown variable")
)

// MissingDensityError reports a component without any distribution node.
type MissingDensityError struct {
	// Component is the index of the first offending component.
	Component int
	// Components is the total number of components in the model.
	Components int
}

func (e *MissingDensityError) Error() string {
	if e.Components > 1 {
		return fmt.Sprintf("the model contains %d disjoint graphs; one or more of these sub-graphs has no greta arrays associated with a probability density, so a model cannot be defined", e.Components)
	}
	return "no greta arrays are associated with a probability density, so a model cannot be defined"
}

// Is makes errors.Is(err, ErrMissingDensity) true.
func (e *MissingDensityError) Is(target error) bool { return target == ErrMissingDensity }

// MissingVariableError reports a component without any variable node.
type MissingVariableError struct {
	// Component is the index of the first offending component.
	Component int
	// Components is the total number of components in the model.
	Components int
}

func (e *MissingVariableError) Error() string {
	if e.Components > 1 {
		return fmt.Sprintf("the model contains %d disjoint graphs; one or more of these sub-graphs has no greta arrays that are unknown, so a model cannot be defined", e.Components)
	}
	return "no greta arrays are unknown, so a model cannot be defined"
}

// Is makes errors.Is(err, ErrMissingVariable) true.
func (e *MissingVariableError) Is(target error) bool { return target == ErrMissingVariable }

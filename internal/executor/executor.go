// Package executor defines the contract between model lowering and a numeric
// engine.
//
// Lowering hands an engine a Plan: the discovered nodes in a deterministic
// topological order together with the build options. The engine checks the
// plan and returns an Executable that can evaluate node values for a given
// assignment of variables. Densities are not evaluated.
package executor

import (
	"context"
	"errors"

	"github.com/specialistvlad/gretago/internal/config"
	"github.com/specialistvlad/gretago/internal/node"
	"github.com/specialistvlad/gretago/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// Errors an engine may return from Define or Evaluate.
var (
	ErrUnsupportedPrecision = errors.New("precision not supported by engine")
	ErrInvalidCoreCount     = errors.New("core count must be positive")
	ErrUnknownOperator      = errors.New("unknown operator")
	ErrArity                = errors.New("wrong number of operands")
	ErrUnorderedPlan        = errors.New("plan step uses an input defined after it")
	ErrMissingAssignment    = errors.New("no value assigned to variable")
	ErrUnexpectedAssignment = errors.New("value assigned to a node that is not a variable")
	ErrOutOfBounds          = errors.New("value outside variable bounds")
	ErrNoValue              = errors.New("input has no value")
)

// Step is one node of a plan.
type Step struct {
	ID   nodeid.ID
	Role node.Role
	Name string

	// Inputs are the ids this step reads: operands of an operation or the
	// parameters (in name order) of a distribution.
	Inputs []nodeid.ID

	// Value is the observed value of a data step.
	Value cty.Value
	// Bounds constrain the value of a variable step.
	Bounds node.Bounds
	// Op is the operator of an operation step.
	Op string
	// Family, Params and Target describe a distribution step.
	Family string
	Params map[string]nodeid.ID
	Target nodeid.ID
}

// Plan is the engine-neutral description of a model.
type Plan struct {
	// Steps are ordered so that every step comes after its inputs.
	Steps   []Step
	Options config.Options
}

// Engine turns plans into executables.
type Engine interface {
	Define(ctx context.Context, plan *Plan) (Executable, error)
}

// Executable is a plan accepted by an engine.
type Executable interface {
	// Plan returns the plan the executable was defined from.
	Plan() *Plan

	// Evaluate computes the value of every data, variable and operation step
	// given values for all variables.
	Evaluate(ctx context.Context, assignments map[nodeid.ID]cty.Value) (map[nodeid.ID]cty.Value, error)
}

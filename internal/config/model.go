package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/gretago/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// Definition is the unified, format-agnostic representation of a model file
// (or a directory of them).
type Definition struct {
	Data          []*Data
	Variables     []*Variable
	Operations    []*Operation
	Distributions []*Distribution
	Settings      *Settings
}

// NewDefinition returns an empty Definition with default settings.
func NewDefinition() *Definition {
	return &Definition{Settings: &Settings{}}
}

// Operand is either a reference to another declaration or a numeric constant.
type Operand struct {
	Ref      *nodeid.Ref
	Constant cty.Value
}

// RefOperand wraps a reference.
func RefOperand(ref nodeid.Ref) Operand {
	return Operand{Ref: &ref}
}

// ConstOperand wraps a constant value.
func ConstOperand(v cty.Value) Operand {
	return Operand{Constant: v}
}

// IsRef reports whether the operand points at another declaration.
func (o Operand) IsRef() bool {
	return o.Ref != nil
}

// Data is the format-agnostic representation of a `data` block.
type Data struct {
	Name      string
	Value     cty.Value
	DeclRange hcl.Range
}

// Variable is the format-agnostic representation of a `variable` block.
type Variable struct {
	Name      string
	Lower     *float64
	Upper     *float64
	DeclRange hcl.Range
}

// Operation is the format-agnostic representation of an `operation` block.
type Operation struct {
	Name      string
	Op        string
	Operands  []Operand
	DeclRange hcl.Range
}

// Distribution is the format-agnostic representation of a `distribution` block.
type Distribution struct {
	Name      string
	Family    string
	Target    nodeid.Ref
	Params    map[string]Operand
	DeclRange hcl.Range
}

// Settings is the format-agnostic representation of the `model` block.
// Nil fields were not set in the file.
type Settings struct {
	Track     []nodeid.Ref
	Precision *string
	Cores     *int
	Compile   *bool
}

// Options merges the file settings over base, leaving unset fields alone.
func (s *Settings) Options(base Options) (Options, error) {
	if s == nil {
		return base, nil
	}
	out := base
	if s.Precision != nil {
		p, err := ParsePrecision(*s.Precision)
		if err != nil {
			return Options{}, err
		}
		out.Precision = p
	}
	if s.Cores != nil {
		out.CoreCount = *s.Cores
	}
	if s.Compile != nil {
		out.Compile = *s.Compile
	}
	return out, nil
}

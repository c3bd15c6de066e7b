package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// rootSchema lists the top-level blocks a model file may contain. Anything
// else is reported as an unsupported block.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "data", LabelNames: []string{"name"}},
		{Type: "variable", LabelNames: []string{"name"}},
		{Type: "operation", LabelNames: []string{"name"}},
		{Type: "distribution", LabelNames: []string{"name"}},
		{Type: "model"},
	},
}

// dataBody is the content of a `data "name" {}` block.
type dataBody struct {
	Value hcl.Expression `hcl:"value"`
}

// variableBody is the content of a `variable "name" {}` block.
type variableBody struct {
	Lower *float64 `hcl:"lower,optional"`
	Upper *float64 `hcl:"upper,optional"`
}

// operationBody is the content of an `operation "name" {}` block. Operands
// are references (`variable.mu`) or numeric constants.
type operationBody struct {
	Op       string         `hcl:"op"`
	Operands hcl.Expression `hcl:"operands"`
}

// distributionBody is the content of a `distribution "name" {}` block.
type distributionBody struct {
	Family string         `hcl:"family"`
	Target hcl.Expression `hcl:"target"`
	Params hcl.Expression `hcl:"params,optional"`
}

// modelBody is the content of the single `model {}` block.
type modelBody struct {
	Track     hcl.Expression `hcl:"track,optional"`
	Precision *string        `hcl:"precision,optional"`
	Cores     *int           `hcl:"cores,optional"`
	Compile   *bool          `hcl:"compile,optional"`
}

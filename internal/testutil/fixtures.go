package testutil

import (
	"testing"

	"github.com/specialistvlad/gretago/internal/node"
	"github.com/specialistvlad/gretago/internal/nodeid"
	"github.com/specialistvlad/gretago/internal/registry"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// Regression is y ~ normal(mu * x + b, sd) with a prior on sd, created in a
// fresh registry.
type Regression struct {
	Reg              *registry.Registry
	X, Y             *node.Node
	Mu, B, SD        *node.Node
	Scaled, Eta, Lik *node.Node
	PriorSD          *node.Node
}

// NewRegression creates the regression fixture.
func NewRegression(t *testing.T) *Regression {
	t.Helper()
	r := &Regression{Reg: registry.New()}
	var err error

	r.X, err = r.Reg.Data("x", Numbers(1, 2, 3))
	require.NoError(t, err)
	r.Y, err = r.Reg.Data("y", Numbers(3, 5, 7))
	require.NoError(t, err)
	r.Mu, err = r.Reg.Variable("mu", node.Bounds{})
	require.NoError(t, err)
	r.B, err = r.Reg.Variable("b", node.Bounds{})
	require.NoError(t, err)
	lower := 0.0
	r.SD, err = r.Reg.Variable("sd", node.Bounds{Lower: &lower})
	require.NoError(t, err)
	r.Scaled, err = r.Reg.Operation("scaled", "multiply", r.Mu.ID(), r.X.ID())
	require.NoError(t, err)
	r.Eta, err = r.Reg.Operation("eta", "add", r.Scaled.ID(), r.B.ID())
	require.NoError(t, err)
	r.Lik, err = r.Reg.Distribution("lik", "normal", map[string]nodeid.ID{"mean": r.Eta.ID(), "sd": r.SD.ID()}, r.Y.ID())
	require.NoError(t, err)
	r.PriorSD, err = r.Reg.Distribution("prior_sd", "exponential", nil, r.SD.ID())
	require.NoError(t, err)
	return r
}

// Numbers returns a list of integer numbers.
func Numbers(vals ...int64) cty.Value {
	out := make([]cty.Value, 0, len(vals))
	for _, v := range vals {
		out = append(out, cty.NumberIntVal(v))
	}
	return cty.ListVal(out)
}

// RegressionHCL describes the regression fixture as a model file.
const RegressionHCL = `
data "x" {
  value = [1, 2, 3]
}

data "y" {
  value = [3, 5, 7]
}

variable "mu" {}

variable "b" {}

variable "sd" {
  lower = 0
}

operation "scaled" {
  op       = "multiply"
  operands = [variable.mu, data.x]
}

operation "eta" {
  op       = "add"
  operands = [operation.scaled, variable.b]
}

distribution "lik" {
  family = "normal"
  target = data.y
  params = {
    mean = operation.eta
    sd   = variable.sd
  }
}

distribution "prior_sd" {
  family = "exponential"
  target = variable.sd
}
`

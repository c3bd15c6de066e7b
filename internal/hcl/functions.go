package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// functions are the numeric helpers available when evaluating constants,
// e.g. `value = concat(range(1, 4), [10])`.
func functions() map[string]function.Function {
	return map[string]function.Function{
		"abs":     stdlib.AbsoluteFunc,
		"ceil":    stdlib.CeilFunc,
		"concat":  stdlib.ConcatFunc,
		"flatten": stdlib.FlattenFunc,
		"floor":   stdlib.FloorFunc,
		"log":     stdlib.LogFunc,
		"max":     stdlib.MaxFunc,
		"min":     stdlib.MinFunc,
		"pow":     stdlib.PowFunc,
		"range":   stdlib.RangeFunc,
		"reverse": stdlib.ReverseListFunc,
		"signum":  stdlib.SignumFunc,
	}
}

// newEvalContext returns the context constants are evaluated in. It has no
// variables, so references are only accepted where a block expects them.
func newEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{Functions: functions()}
}

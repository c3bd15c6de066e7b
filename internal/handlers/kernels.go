package handlers

import (
	"math"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

var euler = cty.NumberFloatVal(math.E)

func builtins() []*Kernel {
	return []*Kernel{
		binary("add", stdlib.Add),
		binary("subtract", stdlib.Subtract),
		binary("multiply", stdlib.Multiply),
		binary("divide", stdlib.Divide),
		binary("pow", stdlib.Pow),
		unary("negate", stdlib.Negate),
		unary("abs", stdlib.Absolute),
		unary("exp", func(x cty.Value) (cty.Value, error) { return stdlib.Pow(euler, x) }),
		unary("log", func(x cty.Value) (cty.Value, error) { return stdlib.Log(x, euler) }),
		{Name: "sum", MinArgs: 1, MaxArgs: Variadic, Fn: sum},
	}
}

func unary(name string, fn func(cty.Value) (cty.Value, error)) *Kernel {
	return &Kernel{
		Name:    name,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(args []cty.Value) (cty.Value, error) {
			return elementwise(args, func(s []cty.Value) (cty.Value, error) { return fn(s[0]) })
		},
	}
}

func binary(name string, fn func(a, b cty.Value) (cty.Value, error)) *Kernel {
	return &Kernel{
		Name:    name,
		MinArgs: 2,
		MaxArgs: 2,
		Fn: func(args []cty.Value) (cty.Value, error) {
			return elementwise(args, func(s []cty.Value) (cty.Value, error) { return fn(s[0], s[1]) })
		},
	}
}

// elementwise applies fn to scalars. List operands are walked in step and
// scalar operands are repeated for every element.
func elementwise(args []cty.Value, fn func([]cty.Value) (cty.Value, error)) (cty.Value, error) {
	length := -1
	for _, a := range args {
		if !a.Type().IsListType() {
			continue
		}
		n := a.LengthInt()
		if length >= 0 && n != length {
			return cty.NilVal, ErrShapeMismatch
		}
		length = n
	}
	if length < 0 {
		return fn(args)
	}
	if length == 0 {
		return cty.ListValEmpty(cty.Number), nil
	}

	out := make([]cty.Value, length)
	scalars := make([]cty.Value, len(args))
	for i := 0; i < length; i++ {
		for j, a := range args {
			if a.Type().IsListType() {
				scalars[j] = a.Index(cty.NumberIntVal(int64(i)))
			} else {
				scalars[j] = a
			}
		}
		v, err := fn(scalars)
		if err != nil {
			return cty.NilVal, err
		}
		out[i] = v
	}
	return cty.ListVal(out), nil
}

// sum adds every element of every operand into one number.
func sum(args []cty.Value) (cty.Value, error) {
	total := cty.Zero
	for _, a := range args {
		if !a.Type().IsListType() {
			total = total.Add(a)
			continue
		}
		for it := a.ElementIterator(); it.Next(); {
			_, el := it.Element()
			total = total.Add(el)
		}
	}
	return total, nil
}

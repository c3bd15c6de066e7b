// Package handlers holds the operator kernels a numeric engine can run for
// operation nodes.
//
// Every kernel works on numbers and lists of numbers. Elementwise kernels
// broadcast scalars against lists; lists must share one length.
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/zclconf/go-cty/cty"
)

var (
	ErrNotNumeric    = errors.New("operand must be a number or a list of numbers")
	ErrShapeMismatch = errors.New("list operands must have the same length")
)

// Variadic marks a kernel without an upper operand limit.
const Variadic = -1

// Kernel is one registered operator.
type Kernel struct {
	Name    string
	MinArgs int
	// MaxArgs is the upper operand limit, or Variadic.
	MaxArgs int
	Fn      func(args []cty.Value) (cty.Value, error)
}

// AcceptsArity reports whether the kernel can be called with n operands.
func (k *Kernel) AcceptsArity(n int) bool {
	if n < k.MinArgs {
		return false
	}
	return k.MaxArgs == Variadic || n <= k.MaxArgs
}

// Call checks every operand and runs the kernel.
func (k *Kernel) Call(args ...cty.Value) (cty.Value, error) {
	if !k.AcceptsArity(len(args)) {
		return cty.NilVal, fmt.Errorf("%s: got %d operands", k.Name, len(args))
	}
	for i, a := range args {
		if err := checkNumeric(a); err != nil {
			return cty.NilVal, fmt.Errorf("%s operand %d: %w", k.Name, i, err)
		}
	}
	out, err := k.Fn(args)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%s: %w", k.Name, err)
	}
	return out, nil
}

// Handlers holds all the registered kernels.
type Handlers struct {
	all map[string]*Kernel
}

// New creates an empty Handlers instance.
func New() *Handlers {
	return &Handlers{
		all: make(map[string]*Kernel),
	}
}

// Default returns a Handlers instance with every built-in kernel registered.
func Default() *Handlers {
	h := New()
	for _, k := range builtins() {
		h.Register(k)
	}
	return h
}

// Register adds a kernel. Registering a name twice is a programming error.
func (h *Handlers) Register(k *Kernel) {
	if _, exists := h.all[k.Name]; exists {
		panic(fmt.Sprintf("kernel with name '%s' already registered", k.Name))
	}
	slog.Debug("Registering operator kernel.", "name", k.Name)
	h.all[k.Name] = k
}

// Get returns the kernel registered under name.
func (h *Handlers) Get(name string) (*Kernel, bool) {
	k, ok := h.all[name]
	return k, ok
}

// Names returns the registered operator names in sorted order.
func (h *Handlers) Names() []string {
	return slices.Sorted(maps.Keys(h.all))
}

func checkNumeric(v cty.Value) error {
	if v == cty.NilVal || v.IsNull() || !v.IsWhollyKnown() {
		return ErrNotNumeric
	}
	ty := v.Type()
	if ty == cty.Number {
		return nil
	}
	if ty.IsListType() && ty.ElementType() == cty.Number {
		return nil
	}
	return fmt.Errorf("%w: got %s", ErrNotNumeric, ty.FriendlyName())
}

// Package localexecutor provides the in-process reference implementation of
// the executor.Engine interface.
//
// Numbers are evaluated in float64 and, for single precision plans, rounded
// through float32 after every step. Independent steps of one dependency
// level are evaluated concurrently, bounded by the plan's core count.
package localexecutor

import (
	"context"
	"fmt"

	"github.com/specialistvlad/gretago/internal/config"
	"github.com/specialistvlad/gretago/internal/ctxlog"
	"github.com/specialistvlad/gretago/internal/executor"
	"github.com/specialistvlad/gretago/internal/handlers"
	"github.com/specialistvlad/gretago/internal/inmemorystore"
	"github.com/specialistvlad/gretago/internal/node"
	"github.com/specialistvlad/gretago/internal/nodeid"
	"github.com/specialistvlad/gretago/internal/nodestore"
	"github.com/specialistvlad/gretago/internal/scheduler"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"golang.org/x/sync/errgroup"
)

// Engine implements executor.Engine for local evaluation.
type Engine struct {
	handlers *handlers.Handlers
}

// New creates a local engine running the given kernels.
func New(h *handlers.Handlers) *Engine {
	return &Engine{handlers: h}
}

// Define checks the plan and returns an executable for it. With Compile set
// the evaluation schedule is computed here instead of on every Evaluate.
func (e *Engine) Define(ctx context.Context, plan *executor.Plan) (executor.Executable, error) {
	logger := ctxlog.FromContext(ctx)

	switch plan.Options.Precision {
	case config.PrecisionSingle, config.PrecisionDouble:
	default:
		return nil, fmt.Errorf("%w: %q", executor.ErrUnsupportedPrecision, plan.Options.Precision)
	}
	if plan.Options.CoreCount < 1 {
		return nil, fmt.Errorf("%w: %d", executor.ErrInvalidCoreCount, plan.Options.CoreCount)
	}

	index := make(map[nodeid.ID]int, len(plan.Steps))
	for i, step := range plan.Steps {
		for _, in := range step.Inputs {
			if _, ok := index[in]; !ok {
				return nil, fmt.Errorf("%w: %s reads %s", executor.ErrUnorderedPlan, step.ID, in)
			}
		}
		if step.Role == node.Operation {
			k, ok := e.handlers.Get(step.Op)
			if !ok {
				return nil, fmt.Errorf("%w: '%s' in %s", executor.ErrUnknownOperator, step.Op, label(step))
			}
			if !k.AcceptsArity(len(step.Inputs)) {
				return nil, fmt.Errorf("%w: '%s' in %s got %d", executor.ErrArity, step.Op, label(step), len(step.Inputs))
			}
		}
		index[step.ID] = i
	}

	x := &Executable{
		plan:     plan,
		index:    index,
		handlers: e.handlers,
	}
	if plan.Options.Compile {
		x.levels = scheduler.Levels(plan)
		logger.Debug("Plan compiled.", "steps", len(plan.Steps), "levels", len(x.levels), "width", scheduler.Width(x.levels))
	}
	logger.Debug("Plan defined.", "steps", len(plan.Steps), "precision", plan.Options.Precision, "cores", plan.Options.CoreCount)
	return x, nil
}

// Executable is a plan accepted by the local engine.
type Executable struct {
	plan     *executor.Plan
	index    map[nodeid.ID]int
	handlers *handlers.Handlers
	// levels is the precomputed schedule of a compiled plan.
	levels [][]int
}

// Plan returns the plan the executable was defined from.
func (x *Executable) Plan() *executor.Plan { return x.plan }

// Compiled reports whether the schedule was computed at define time.
func (x *Executable) Compiled() bool { return x.levels != nil }

// Evaluate computes step values level by level.
func (x *Executable) Evaluate(ctx context.Context, assignments map[nodeid.ID]cty.Value) (map[nodeid.ID]cty.Value, error) {
	for id := range assignments {
		i, ok := x.index[id]
		if !ok || x.plan.Steps[i].Role != node.Variable {
			return nil, fmt.Errorf("%w: %s", executor.ErrUnexpectedAssignment, id)
		}
	}

	levels := x.levels
	if levels == nil {
		levels = scheduler.Levels(x.plan)
	}

	state := inmemorystore.New()
	for _, level := range levels {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(x.plan.Options.CoreCount)

		for _, i := range level {
			step := x.plan.Steps[i]
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				v, ok, err := x.evaluateStep(step, state, assignments)
				if err != nil {
					state.SetError(step.ID, err)
					return err
				}
				if ok {
					state.SetValue(step.ID, v)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			ctxlog.FromContext(ctx).Debug("Evaluation failed.", "error", err)
			return nil, err
		}
	}
	return state.Values(), nil
}

// evaluateStep returns the value of one step. Distribution steps have no
// value and report ok=false.
func (x *Executable) evaluateStep(step executor.Step, state nodestore.Store, assignments map[nodeid.ID]cty.Value) (cty.Value, bool, error) {
	switch step.Role {
	case node.Data:
		v, err := round(step.Value, x.plan.Options.Precision)
		return v, err == nil, err
	case node.Variable:
		v, ok := assignments[step.ID]
		if !ok {
			return cty.NilVal, false, fmt.Errorf("%w: %s", executor.ErrMissingAssignment, label(step))
		}
		if err := checkBounds(v, step.Bounds); err != nil {
			return cty.NilVal, false, fmt.Errorf("%s: %w", label(step), err)
		}
		if !v.Type().Equals(cty.Number) {
			list, err := convert.Convert(v, cty.List(cty.Number))
			if err != nil {
				return cty.NilVal, false, fmt.Errorf("%s: %w", label(step), err)
			}
			v = list
		}
		v, err := round(v, x.plan.Options.Precision)
		return v, err == nil, err
	case node.Operation:
		inputs, err := collect(step, state)
		if err != nil {
			return cty.NilVal, false, err
		}
		k, _ := x.handlers.Get(step.Op)
		out, err := k.Call(inputs...)
		if err != nil {
			return cty.NilVal, false, fmt.Errorf("%s: %w", label(step), err)
		}
		out, err = round(out, x.plan.Options.Precision)
		return out, err == nil, err
	default:
		return cty.NilVal, false, nil
	}
}

// collect gathers the operand values of an operation step.
func collect(step executor.Step, state nodestore.Store) ([]cty.Value, error) {
	inputs := make([]cty.Value, len(step.Inputs))
	for i, in := range step.Inputs {
		v, ok := state.Value(in)
		if !ok {
			return nil, fmt.Errorf("%w: %s operand %d (%s)", executor.ErrNoValue, label(step), i, in)
		}
		inputs[i] = v
	}
	return inputs, nil
}

func label(step executor.Step) string {
	if step.Name != "" {
		return fmt.Sprintf("%s '%s'", step.Role, step.Name)
	}
	return fmt.Sprintf("%s %s", step.Role, step.ID.Short())
}

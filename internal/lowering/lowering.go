// Package lowering turns a validated model graph into an executable defined
// in a caller-owned session.
//
// Lowering resets the session first, so an executable never shares engine
// state with an earlier build. The plan handed to the engine lists the nodes
// in a deterministic topological order, which makes repeated lowerings of the
// same graph structurally identical.
package lowering

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/gretago/internal/builder"
	"github.com/specialistvlad/gretago/internal/config"
	"github.com/specialistvlad/gretago/internal/ctxlog"
	"github.com/specialistvlad/gretago/internal/executor"
	"github.com/specialistvlad/gretago/internal/node"
	"github.com/specialistvlad/gretago/internal/nodeid"
	"github.com/specialistvlad/gretago/internal/session"
)

// ErrLowering is matched by every LoweringError.
var ErrLowering = errors.New("lowering failed")

// LoweringError reports that the graph could not be turned into an
// executable, either because the engine rejected it or because the graph
// itself cannot be ordered.
type LoweringError struct {
	Cause error
}

func (e *LoweringError) Error() string {
	return fmt.Sprintf("lowering failed: %v", e.Cause)
}

func (e *LoweringError) Unwrap() error { return e.Cause }

// Is makes errors.Is(err, ErrLowering) true.
func (e *LoweringError) Is(target error) bool { return target == ErrLowering }

// Edge is a directed link of the adjacency view: To depends on From.
type Edge struct {
	From nodeid.ID
	To   nodeid.ID
	// Target marks the link from a distribution to the node it scores.
	Target bool
}

// Lowered is the result of a successful lowering.
type Lowered struct {
	Plan       *executor.Plan
	Executable executor.Executable
	Adjacency  []Edge
}

// Lower resets sess, builds the plan for g and defines it in sess.
func Lower(ctx context.Context, sess session.Session, g *builder.Graph, opts config.Options) (*Lowered, error) {
	logger := ctxlog.FromContext(ctxlog.With(ctx, "session", sess.ID()))

	if err := sess.Reset(ctx); err != nil {
		return nil, &LoweringError{Cause: fmt.Errorf("resetting session: %w", err)}
	}

	plan, err := PlanFor(g, opts)
	if err != nil {
		return nil, &LoweringError{Cause: err}
	}

	x, err := sess.Define(ctx, plan)
	if err != nil {
		return nil, &LoweringError{Cause: err}
	}

	adjacency := Adjacency(g)
	logger.Debug("Model lowered.", "steps", len(plan.Steps), "edges", len(adjacency))
	return &Lowered{Plan: plan, Executable: x, Adjacency: adjacency}, nil
}

// PlanFor builds the engine plan of g. It fails if the directed links of g
// contain a cycle.
func PlanFor(g *builder.Graph, opts config.Options) (*executor.Plan, error) {
	if err := g.Topology.DetectCycles(); err != nil {
		return nil, err
	}
	order, err := g.Topology.TopologicalSort()
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]*node.Node, g.Nodes.Len())
	for _, n := range g.Nodes.Nodes() {
		byKey[n.ID().String()] = n
	}

	steps := make([]executor.Step, 0, len(order))
	for _, key := range order {
		n, ok := byKey[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s", builder.ErrUnknownNode, key)
		}
		steps = append(steps, stepFor(n))
	}
	return &executor.Plan{Steps: steps, Options: opts}, nil
}

func stepFor(n *node.Node) executor.Step {
	step := executor.Step{
		ID:     n.ID(),
		Role:   n.Role(),
		Name:   n.Name(),
		Inputs: n.Inputs(),
	}
	switch n.Role() {
	case node.Data:
		step.Value = n.Value()
	case node.Variable:
		step.Bounds = n.Bounds()
	case node.Operation:
		step.Op = n.Op()
	case node.Distribution:
		step.Family = n.Family()
		step.Params = n.Params()
		step.Target = n.Target()
	}
	return step
}

// Adjacency returns the directed links of g sorted by source then
// destination. Self links never occur.
func Adjacency(g *builder.Graph) []Edge {
	byKey := make(map[string]*node.Node, g.Nodes.Len())
	for _, n := range g.Nodes.Nodes() {
		byKey[n.ID().String()] = n
	}

	var edges []Edge
	for _, e := range g.Topology.Edges() {
		from, to := byKey[e.From], byKey[e.To]
		if from == nil || to == nil || from == to {
			continue
		}
		edges = append(edges, Edge{
			From:   from.ID(),
			To:     to.ID(),
			Target: from.Role() == node.Distribution && from.Target() == to.ID(),
		})
	}
	return edges
}

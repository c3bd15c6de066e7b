// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/gretago/internal/builder"
	"github.com/specialistvlad/gretago/internal/config"
	"github.com/specialistvlad/gretago/internal/ctxlog"
	"github.com/specialistvlad/gretago/internal/executor"
	"github.com/specialistvlad/gretago/internal/lowering"
	"github.com/specialistvlad/gretago/internal/node"
	"github.com/specialistvlad/gretago/internal/nodeid"
	"github.com/specialistvlad/gretago/internal/session"
	"github.com/zclconf/go-cty/cty"
)

// Registry is what a build needs from the place nodes are created in.
// *registry.Registry implements it.
type Registry interface {
	builder.Source

	// NonData returns the ids of every non-data node, used as seeds when the
	// caller gives none.
	NonData() []nodeid.ID

	// Visible returns every node known to the caller.
	Visible() []*node.Node
}

// Model is the validated, lowered artifact of one build.
type Model struct {
	graph   *builder.Graph
	visible []*node.Node
	lowered *lowering.Lowered
	options config.Options
}

// Build creates a model from the given seeds. Without seeds every non-data
// node of the registry is used. Options are resolved against the available
// cores before lowering; see config.Options.Resolve.
func Build(ctx context.Context, reg Registry, sess session.Session, opts config.Options, seeds ...nodeid.ID) (*Model, error) {
	logger := ctxlog.FromContext(ctx)

	if len(seeds) == 0 {
		seeds = reg.NonData()
		logger.Debug("No seeds given, using every non-data node.", "seeds", len(seeds))
	}
	if len(seeds) == 0 {
		return nil, builder.ErrEmptySeeds
	}

	resolved, err := opts.Resolve(ctx, config.AvailableCores())
	if err != nil {
		return nil, err
	}

	g, err := builder.Build(ctx, reg, seeds)
	if err != nil {
		return nil, err
	}

	lowered, err := lowering.Lower(ctx, sess, g, resolved)
	if err != nil {
		return nil, err
	}

	m := &Model{
		graph:   g,
		visible: reg.Visible(),
		lowered: lowered,
		options: resolved,
	}
	logger.Info("Model built.", "nodes", g.Nodes.Len(), "components", g.Components.Count(), "session", sess.ID())
	return m, nil
}

// Nodes returns the discovered nodes sorted by id.
func (m *Model) Nodes() []*node.Node { return m.graph.Nodes.Nodes() }

// Node returns a discovered node by id.
func (m *Model) Node(id nodeid.ID) (*node.Node, bool) { return m.graph.Nodes.Get(id) }

// Roles returns the role of every discovered node.
func (m *Model) Roles() map[nodeid.ID]node.Role { return maps.Clone(m.graph.Roles) }

// Components returns the component assignment of the discovered nodes.
func (m *Model) Components() *builder.Components { return m.graph.Components }

// ComponentCount returns the number of disjoint sub-graphs.
func (m *Model) ComponentCount() int { return m.graph.Components.Count() }

// Targets returns the seeds the model was built from.
func (m *Model) Targets() []nodeid.ID { return slices.Clone(m.graph.Seeds) }

// Visible returns every node the registry knew about at build time.
func (m *Model) Visible() []*node.Node { return slices.Clone(m.visible) }

// Adjacency returns the directed links between discovered nodes.
func (m *Model) Adjacency() []lowering.Edge { return slices.Clone(m.lowered.Adjacency) }

// Executable returns the handle defined in the session.
func (m *Model) Executable() executor.Executable { return m.lowered.Executable }

// Plan returns the plan the executable was defined from.
func (m *Model) Plan() *executor.Plan { return m.lowered.Plan }

// Options returns the resolved build options.
func (m *Model) Options() config.Options { return m.options }

// Label returns the display label of a discovered node. Anonymous scalar
// constants are labelled with their value.
func (m *Model) Label(id nodeid.ID) string {
	n, ok := m.graph.Nodes.Get(id)
	if !ok {
		return id.Short()
	}
	if n.Name() == "" && n.Role() == node.Data {
		if v := n.Value(); v.Type().Equals(cty.Number) {
			return v.AsBigFloat().Text('g', 6)
		}
	}
	return n.Label()
}

// String returns a short human-readable summary.
func (m *Model) String() string {
	s := m.Summary()
	return fmt.Sprintf("model with %d nodes in %d component(s): %d variable(s), %d distribution(s), %d operation(s), %d data [%s precision, %d core(s), compile=%t]",
		s.Nodes, s.Components,
		s.Roles[node.Variable.String()], s.Roles[node.Distribution.String()],
		s.Roles[node.Operation.String()], s.Roles[node.Data.String()],
		s.Precision, s.Cores, s.Compile)
}

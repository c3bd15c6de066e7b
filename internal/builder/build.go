package builder

import (
	"context"
	"slices"

	"github.com/specialistvlad/gretago/internal/ctxlog"
	"github.com/specialistvlad/gretago/internal/nodeid"
)

// Analyze runs discovery, classification and partitioning without
// validating the result.
func Analyze(ctx context.Context, src Source, seeds []nodeid.ID) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)

	set, err := Discover(ctx, src, seeds)
	if err != nil {
		return nil, err
	}

	roles, err := Classify(set)
	if err != nil {
		return nil, err
	}

	comps, topology, err := Partition(src, set)
	if err != nil {
		return nil, err
	}
	logger.Debug("Partitioned model graph.", "nodes", set.Len(), "components", comps.Count())

	return &Graph{
		Seeds:      slices.Clone(seeds),
		Nodes:      set,
		Roles:      roles,
		Components: comps,
		Topology:   topology,
	}, nil
}

// Build runs every phase and returns the graph only if it is a valid model.
func Build(ctx context.Context, src Source, seeds []nodeid.ID) (*Graph, error) {
	g, err := Analyze(ctx, src, seeds)
	if err != nil {
		return nil, err
	}
	if err := Validate(g.Roles, g.Components); err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Model graph validated.", "components", g.Components.Count())
	return g, nil
}

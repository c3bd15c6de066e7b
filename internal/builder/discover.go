package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/gretago/internal/ctxlog"
	"github.com/specialistvlad/gretago/internal/node"
	"github.com/specialistvlad/gretago/internal/nodeid"
)

// Discover returns every node reachable from the seeds through parent or
// child links, transitively. Links are followed in both directions and each
// node is visited once, so cycles cannot cause non-termination.
func Discover(ctx context.Context, src Source, seeds []nodeid.ID) (*NodeSet, error) {
	logger := ctxlog.FromContext(ctx)
	if len(seeds) == 0 {
		return nil, ErrEmptySeeds
	}

	visited := make(map[nodeid.ID]bool, len(seeds))
	var found []*node.Node
	queue := make([]nodeid.ID, 0, len(seeds))

	for _, id := range seeds {
		if _, ok := src.Node(id); !ok {
			return nil, fmt.Errorf("%w: seed %s", ErrUnknownNode, id)
		}
		if !visited[id] {
			visited[id] = true
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		n, ok := src.Node(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
		}
		found = append(found, n)

		parents, err := src.ParentsOf(id)
		if err != nil {
			return nil, fmt.Errorf("reading parents of %s: %w", n.Label(), err)
		}
		children, err := src.ChildrenOf(id)
		if err != nil {
			return nil, fmt.Errorf("reading children of %s: %w", n.Label(), err)
		}

		for _, next := range append(parents, children...) {
			if visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}

	set := newNodeSet(found)
	logger.Debug("Discovered model nodes.", "seeds", len(seeds), "nodes", set.Len())
	return set, nil
}

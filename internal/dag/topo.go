package dag

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
)

// insertSorted inserts an item into a sorted slice maintaining sort order.
func insertSorted(slice []string, item string) []string {
	idx := sort.SearchStrings(slice, item)
	return slices.Insert(slice, idx, item)
}

// TopologicalSort returns a deterministic ordering in which every node comes
// after all of its dependencies, using Kahn's algorithm. Among nodes that are
// ready at the same time the smallest ID goes first. A cycle returns ErrCycle.
func (g *Graph) TopologicalSort() ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	inDegree := make(map[string]int, len(g.nodes))
	queue := make([]string, 0, len(g.nodes)/4)
	for id, n := range g.nodes {
		inDegree[id] = len(n.deps)
		if len(n.deps) == 0 {
			queue = append(queue, id)
		}
	}
	slices.Sort(queue)

	result := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		result = append(result, id)

		for _, childID := range slices.Sorted(maps.Keys(g.nodes[id].dependents)) {
			inDegree[childID]--
			if inDegree[childID] == 0 {
				queue = insertSorted(queue, childID)
			}
		}
	}

	if len(result) != len(g.nodes) {
		var stuck []string
		for id, degree := range inDegree {
			if degree > 0 {
				stuck = append(stuck, id)
			}
		}
		slices.Sort(stuck)
		return nil, fmt.Errorf("%w among nodes: %s", ErrCycle, strings.Join(stuck, ", "))
	}
	return result, nil
}

package dag

import (
	"maps"
	"slices"
)

// Components partitions the graph into weakly connected components, treating
// every edge as undirected. It returns the component index of each node and
// the number of components. Indices run from 0 and follow the smallest node
// ID of each component.
func (g *Graph) Components() (map[string]int, int) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	assignment := make(map[string]int, len(g.nodes))
	count := 0

	for _, start := range slices.Sorted(maps.Keys(g.nodes)) {
		if _, seen := assignment[start]; seen {
			continue
		}

		// Iterative flood fill over both edge directions.
		stack := []*node{g.nodes[start]}
		assignment[start] = count
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			for _, neighbours := range []map[string]*node{n.deps, n.dependents} {
				for id, next := range neighbours {
					if _, seen := assignment[id]; seen {
						continue
					}
					assignment[id] = count
					stack = append(stack, next)
				}
			}
		}
		count++
	}

	return assignment, count
}

package scheduler

import (
	"github.com/specialistvlad/gretago/internal/executor"
	"github.com/specialistvlad/gretago/internal/nodeid"
)

// Levels groups step indices by dependency depth. Inputs that are not steps
// of the plan are ignored. The plan must already be in dependency order.
func Levels(plan *executor.Plan) [][]int {
	depth := make(map[int]int, len(plan.Steps))
	position := make(map[nodeid.ID]int, len(plan.Steps))
	var levels [][]int

	for i, step := range plan.Steps {
		d := 0
		for _, in := range step.Inputs {
			if j, ok := position[in]; ok && depth[j]+1 > d {
				d = depth[j] + 1
			}
		}
		depth[i] = d
		position[step.ID] = i
		for len(levels) <= d {
			levels = append(levels, nil)
		}
		levels[d] = append(levels[d], i)
	}
	return levels
}

// Width returns the size of the widest level, the most steps that can ever
// run at once.
func Width(levels [][]int) int {
	w := 0
	for _, level := range levels {
		w = max(w, len(level))
	}
	return w
}

package builder

import (
	"fmt"

	"github.com/specialistvlad/gretago/internal/node"
	"github.com/specialistvlad/gretago/internal/nodeid"
)

// Classify returns the declared role of every node in the set.
func Classify(set *NodeSet) (map[nodeid.ID]node.Role, error) {
	roles := make(map[nodeid.ID]node.Role, set.Len())
	for _, n := range set.nodes {
		if !n.Role().Valid() {
			return nil, fmt.Errorf("%w: %s has role %d", ErrUnknownRole, n.ID(), int(n.Role()))
		}
		roles[n.ID()] = n.Role()
	}
	return roles, nil
}

package builder

import (
	"go.uber.org/multierr"

	"github.com/specialistvlad/gretago/internal/node"
	"github.com/specialistvlad/gretago/internal/nodeid"
)

// Validate checks that every component contains a distribution and a
// variable. Components are visited in index order, the density check runs
// before the variable check, and the first violation is returned.
func Validate(roles map[nodeid.ID]node.Role, comps *Components) error {
	for i := 0; i < comps.Count(); i++ {
		if err := validateComponent(i, roles, comps); err != nil {
			return err
		}
	}
	return nil
}

// CheckAll runs the same checks as Validate but keeps going after a
// violation and returns every failure combined with multierr. A component
// missing both roles contributes two errors.
func CheckAll(roles map[nodeid.ID]node.Role, comps *Components) error {
	var errs error
	for i := 0; i < comps.Count(); i++ {
		present := rolesIn(i, roles, comps)
		if !present[node.Distribution] {
			errs = multierr.Append(errs, &MissingDensityError{Component: i, Components: comps.Count()})
		}
		if !present[node.Variable] {
			errs = multierr.Append(errs, &MissingVariableError{Component: i, Components: comps.Count()})
		}
	}
	return errs
}

func validateComponent(i int, roles map[nodeid.ID]node.Role, comps *Components) error {
	present := rolesIn(i, roles, comps)
	if !present[node.Distribution] {
		return &MissingDensityError{Component: i, Components: comps.Count()}
	}
	if !present[node.Variable] {
		return &MissingVariableError{Component: i, Components: comps.Count()}
	}
	return nil
}

func rolesIn(i int, roles map[nodeid.ID]node.Role, comps *Components) map[node.Role]bool {
	present := make(map[node.Role]bool, len(node.Roles))
	for _, id := range comps.members[i] {
		present[roles[id]] = true
	}
	return present
}

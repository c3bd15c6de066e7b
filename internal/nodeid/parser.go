package nodeid

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex matches a single segment of a reference, e.g. `variable` or `mu_2`.
var segmentRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_-]*$`)

// Kinds lists the block kinds a reference may point at.
var Kinds = []string{"data", "variable", "operation", "distribution"}

// ParseRef creates a Ref by parsing its canonical `kind.name` representation.
func ParseRef(raw string) (Ref, error) {
	if raw == "" {
		return Ref{}, fmt.Errorf("reference cannot be empty")
	}

	segments := strings.Split(raw, ".")
	if len(segments) != 2 {
		return Ref{}, fmt.Errorf("reference %q must have the form kind.name", raw)
	}
	for _, s := range segments {
		if s == "" {
			return Ref{}, fmt.Errorf("reference %q contains empty segment", raw)
		}
		if !segmentRegex.MatchString(s) {
			return Ref{}, fmt.Errorf("invalid reference segment: %q", s)
		}
	}

	ref := Ref{Kind: segments[0], Name: segments[1]}
	if !isKnownKind(ref.Kind) {
		return Ref{}, fmt.Errorf("unknown reference kind %q, expected one of %s", ref.Kind, strings.Join(Kinds, ", "))
	}
	return ref, nil
}

// String serializes the Ref into its canonical string representation.
func (r Ref) String() string {
	if r.Kind == "" && r.Name == "" {
		return ""
	}
	return r.Kind + "." + r.Name
}

func isKnownKind(kind string) bool {
	for _, k := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

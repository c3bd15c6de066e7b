package nodeid

import (
	"slices"

	"github.com/oklog/ulid/v2"
)

// ID is the unique identifier of a node.
type ID struct {
	u ulid.ULID
}

// Zero is the empty ID. No generated node ever carries it.
var Zero ID

// String returns the canonical 26 character ULID encoding.
func (id ID) String() string {
	return id.u.String()
}

// Short returns the last six characters of the ID, which are enough to tell
// nodes of one model apart in labels and log lines.
func (id ID) Short() string {
	s := id.u.String()
	return s[len(s)-6:]
}

// IsZero reports whether the ID is the zero value.
func (id ID) IsZero() bool {
	return id == Zero
}

// Compare orders IDs by creation.
func (id ID) Compare(other ID) int {
	return id.u.Compare(other.u)
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return id.u.MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(b []byte) error {
	return id.u.UnmarshalText(b)
}

// Sort sorts ids in place by creation order.
func Sort(ids []ID) {
	slices.SortFunc(ids, ID.Compare)
}

// Ref is the structured representation of a `kind.name` address.
type Ref struct {
	Kind string
	Name string
}

// NewRef creates a reference without validation. Use ParseRef for user input.
func NewRef(kind, name string) Ref {
	return Ref{Kind: kind, Name: name}
}

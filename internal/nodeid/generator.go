package nodeid

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator hands out strictly increasing IDs. It is safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// NewGenerator returns a generator backed by crypto/rand.
func NewGenerator() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// Next returns a new ID greater than every ID this generator returned before.
func (g *Generator) Next() ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	u, err := ulid.New(ulid.Timestamp(g.now()), g.entropy)
	if err != nil {
		// Only reachable when the monotonic entropy overflows within one millisecond.
		panic(fmt.Sprintf("nodeid: generating id: %v", err))
	}
	return ID{u: u}
}

// Parse decodes the canonical string form of an ID.
func Parse(raw string) (ID, error) {
	u, err := ulid.ParseStrict(raw)
	if err != nil {
		return Zero, fmt.Errorf("invalid node id %q: %w", raw, err)
	}
	return ID{u: u}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(raw string) ID {
	id, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return id
}

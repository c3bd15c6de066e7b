package nodeid

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Monotonic(t *testing.T) {
	g := NewGenerator()

	prev := g.Next()
	for i := 0; i < 1000; i++ {
		next := g.Next()
		require.Equal(t, 1, next.Compare(prev), "ids must strictly increase")
		prev = next
	}
}

func TestGenerator_ConcurrentUnique(t *testing.T) {
	g := NewGenerator()

	var mu sync.Mutex
	seen := make(map[ID]struct{})
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				id := g.Next()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 800)
}

func TestParse(t *testing.T) {
	g := NewGenerator()
	id := g.Next()

	parsed, err := Parse(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = Parse("not-an-id")
	assert.Error(t, err)
}

func TestSortAndShort(t *testing.T) {
	g := NewGenerator()
	a, b, c := g.Next(), g.Next(), g.Next()

	ids := []ID{c, a, b}
	Sort(ids)
	assert.Equal(t, []ID{a, b, c}, ids)

	assert.Len(t, a.Short(), 6)
	assert.True(t, Zero.IsZero())
	assert.False(t, a.IsZero())
}

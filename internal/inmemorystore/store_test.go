package inmemorystore

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/specialistvlad/gretago/internal/nodeid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestSetAndGetValue(t *testing.T) {
	s := New()
	id := nodeid.NewGenerator().Next()

	// A node that has not been evaluated has no value.
	_, ok := s.Value(id)
	assert.False(t, ok)

	s.SetValue(id, cty.NumberIntVal(4))

	v, ok := s.Value(id)
	require.True(t, ok)
	assert.True(t, v.RawEquals(cty.NumberIntVal(4)))
}

func TestSetAndGetError(t *testing.T) {
	s := New()
	id := nodeid.NewGenerator().Next()

	assert.NoError(t, s.Error(id))

	expectedErr := errors.New("a test error occurred")
	s.SetError(id, expectedErr)

	assert.Equal(t, expectedErr, s.Error(id))
	_, ok := s.Value(id)
	assert.False(t, ok, "a failed node has no value")
}

// TestStore_ConcurrentAccess verifies that the store can be safely accessed by
// multiple goroutines simultaneously without data races or lost writes.
func TestStore_ConcurrentAccess(t *testing.T) {
	s := New()
	gen := nodeid.NewGenerator()
	numGoroutines := 100
	ids := make([]nodeid.ID, numGoroutines)
	for i := range ids {
		ids[i] = gen.Next()
	}

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(i int) {
			defer wg.Done()
			s.SetValue(ids[i], cty.NumberIntVal(int64(i)))
			s.SetError(ids[i], fmt.Errorf("error for node %d", i))
		}(i)
	}
	wg.Wait()

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(i int) {
			defer wg.Done()
			v, ok := s.Value(ids[i])
			assert.True(t, ok)
			assert.True(t, v.RawEquals(cty.NumberIntVal(int64(i))), "mismatched value for node %d", i)
			assert.EqualError(t, s.Error(ids[i]), fmt.Sprintf("error for node %d", i))
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.Values(), numGoroutines)
}

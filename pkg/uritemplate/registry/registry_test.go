package registry

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	r := New[string, int]()
	assert.NotNil(t, r)
	assert.Equal(t, 0, r.Len())
}

func TestRegisterAndGet(t *testing.T) {
	r := New[string, int]()

	r.Register("one", 1)
	r.Register("two", 2)

	v, ok := r.Get("one")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = r.Get("three")
	assert.False(t, ok)
	assert.Equal(t, 0, v)
}

func TestRegisterOverwrite(t *testing.T) {
	r := New[string, string]()

	r.Register("key", "old")
	r.Register("key", "new")

	v, ok := r.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "new", v)
	assert.Equal(t, 1, r.Len())
}

func TestDeleteAndKeys(t *testing.T) {
	r := New[int, string]()
	r.Register(1, "a")
	r.Register(2, "b")

	assert.ElementsMatch(t, []int{1, 2}, r.Keys())

	r.Delete(1)
	r.Delete(42)

	assert.Equal(t, []int{2}, r.Keys())
}

func TestLoadOrCompute(t *testing.T) {
	t.Run("computes once when absent", func(t *testing.T) {
		r := New[string, int]()
		calls := 0

		v, computed, err := r.LoadOrCompute("k", func() (int, error) {
			calls++
			return 7, nil
		})
		require.NoError(t, err)
		assert.True(t, computed)
		assert.Equal(t, 7, v)

		v, computed, err = r.LoadOrCompute("k", func() (int, error) {
			calls++
			return 8, nil
		})
		require.NoError(t, err)
		assert.False(t, computed)
		assert.Equal(t, 7, v)
		assert.Equal(t, 1, calls)
	})

	t.Run("error is not stored", func(t *testing.T) {
		r := New[string, int]()
		boom := errors.New("boom")

		_, computed, err := r.LoadOrCompute("k", func() (int, error) {
			return 0, boom
		})
		assert.ErrorIs(t, err, boom)
		assert.False(t, computed)
		assert.Equal(t, 0, r.Len())
	})
}

func TestLoadOrCompute_Concurrent(t *testing.T) {
	r := New[string, string]()
	var calls atomic.Int32

	var wg sync.WaitGroup
	results := make([]string, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, _, err := r.LoadOrCompute(fmt.Sprintf("key-%d", i%5), func() (string, error) {
				calls.Add(1)
				return fmt.Sprintf("value-%d", i%5), nil
			})
			if err == nil {
				results[i] = v
			}
		}(i)
	}
	wg.Wait()

	// Racing computations are tolerated but every caller sees the same
	// deterministic value.
	for i, v := range results {
		assert.Equal(t, fmt.Sprintf("value-%d", i%5), v)
	}
	assert.Equal(t, 5, r.Len())
	assert.GreaterOrEqual(t, calls.Load(), int32(5))
}

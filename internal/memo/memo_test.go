package memo

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_ComputesOnce(t *testing.T) {
	c := New[string]()
	calls := 0
	fn := func() (string, error) {
		calls++
		return "value", nil
	}

	for range 3 {
		v, err := c.Do("k", fn)
		require.NoError(t, err)
		assert.Equal(t, "value", v)
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, c.Len())
}

func TestCache_KeysAreIndependent(t *testing.T) {
	c := New[int]()
	a, _ := c.Do("a", func() (int, error) { return 1, nil })
	b, _ := c.Do("b", func() (int, error) { return 2, nil })
	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.Equal(t, 2, c.Len())
}

func TestCache_ErrorsAreNotStored(t *testing.T) {
	c := New[string]()
	boom := errors.New("boom")

	_, err := c.Do("k", func() (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())

	v, err := c.Do("k", func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestCache_NilComputesEveryTime(t *testing.T) {
	var c *Cache[string]
	calls := 0
	for range 2 {
		_, err := c.Do("k", func() (string, error) {
			calls++
			return "v", nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, c.Len())
}

func TestCache_ConcurrentCallersShareResult(t *testing.T) {
	c := New[string]()
	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, _ := c.Do("k", func() (string, error) {
				calls.Add(1)
				<-release
				return "shared", nil
			})
			results[i] = v
		}(i)
	}
	close(release)
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "shared", r)
	}
	assert.LessOrEqual(t, calls.Load(), int32(len(results)))
	assert.Equal(t, 1, c.Len())
}

package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultStore_PutGet(t *testing.T) {
	s := NewResultStore(time.Hour)
	s.Put(&Result{ID: "a", CreatedAt: time.Now()})

	require.NotNil(t, s.Get("a"))
	assert.Nil(t, s.Get("missing"))
	assert.Equal(t, 1, s.Len())
}

func TestResultStore_Cleanup(t *testing.T) {
	s := NewResultStore(time.Minute)
	s.Put(&Result{ID: "old", CreatedAt: time.Now().Add(-2 * time.Minute)})
	s.Put(&Result{ID: "new", CreatedAt: time.Now()})

	s.Cleanup()

	assert.Nil(t, s.Get("old"))
	assert.NotNil(t, s.Get("new"))
}

func TestResultStore_Janitor(t *testing.T) {
	s := NewResultStore(time.Millisecond)
	s.Put(&Result{ID: "old", CreatedAt: time.Now().Add(-time.Second)})

	s.Start(context.Background(), 5*time.Millisecond)
	defer s.Stop()

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestResultStore_StopWithoutStart(t *testing.T) {
	s := NewResultStore(time.Minute)
	assert.NotPanics(t, s.Stop)
}

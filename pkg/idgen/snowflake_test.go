package idgen

import (
	"sync"
	"testing"
	"time"

	"im-message/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_ConcurrentIDsAreUnique(t *testing.T) {
	gen, err := NewGenerator(config.SnowflakeConfig{NodeID: 3})
	require.NoError(t, err)

	const workers, perWorker = 16, 500
	ids := make(chan int64, workers*perWorker)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				ids <- gen.Create()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]struct{}, workers*perWorker)
	for id := range ids {
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %d", id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, workers*perWorker)
}

func TestGenerator_Monotonic(t *testing.T) {
	gen, err := NewGenerator(config.SnowflakeConfig{NodeID: 1})
	require.NoError(t, err)

	prev := gen.Create()
	for i := 0; i < 1000; i++ {
		next := gen.Create()
		require.Greater(t, next, prev)
		prev = next
	}
}

func TestTime_DerivedFromID(t *testing.T) {
	gen, err := NewGenerator(config.SnowflakeConfig{NodeID: 2})
	require.NoError(t, err)

	before := time.Now().Add(-time.Second)
	id := gen.Create()
	after := time.Now().Add(time.Second)

	ts := Time(id)
	assert.True(t, ts.After(before) && ts.Before(after), "derived time %v", ts)
}

func TestNewGenerator_InvalidNode(t *testing.T) {
	_, err := NewGenerator(config.SnowflakeConfig{NodeID: 4096})
	assert.Error(t, err)
}

package sync

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShardedMutex_SameKeySerializes(t *testing.T) {
	m := NewShardedMutex(0)
	counter := 0
	var wg sync.WaitGroup

	for range 200 {
		wg.Go(func() {
			m.Lock("subject-1")
			defer m.Unlock("subject-1")
			counter++
		})
	}
	wg.Wait()

	assert.Equal(t, 200, counter)
}

func TestShardedMutex_StableShard(t *testing.T) {
	m := NewShardedMutex(8)
	assert.Equal(t, m.shardFor("subject-42"), m.shardFor("subject-42"))
	assert.Equal(t, 0, m.shardFor(""))
	for _, key := range []string{"a", "b", "subject-1", "x/y"} {
		assert.Less(t, m.shardFor(key), 8)
	}
}

func TestShardedMutex_WithLockReturnsError(t *testing.T) {
	m := NewShardedMutex(4)
	want := errors.New("append failed")

	got := m.WithLock("k", func() error { return want })
	assert.ErrorIs(t, got, want)

	// lock released after error
	assert.NoError(t, m.WithLock("k", func() error { return nil }))
}

package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairLocks_MutualExclusionPerKey(t *testing.T) {
	locks := newPairLocks()

	const goroutines = 20
	counter := 0

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			locks.Lock("a:b")
			defer locks.Unlock("a:b")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, counter)
}

func TestPairLocks_EntriesReapedAfterRelease(t *testing.T) {
	locks := newPairLocks()

	locks.Lock("a:b")
	locks.Unlock("a:b")

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.entries)
}

func TestPairLocks_IndependentKeysDoNotBlock(t *testing.T) {
	locks := newPairLocks()

	locks.Lock("a:b")
	defer locks.Unlock("a:b")

	done := make(chan struct{})
	go func() {
		locks.Lock("c:d")
		locks.Unlock("c:d")
		close(done)
	}()

	// Deadlocks here if an unrelated pair contends on the held lock.
	<-done
}

func TestPairLocks_UnlockUnheldPanics(t *testing.T) {
	locks := newPairLocks()

	assert.Panics(t, func() {
		locks.Unlock("a:b")
	})
}

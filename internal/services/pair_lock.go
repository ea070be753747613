package services

import "sync"

// pairLocks serializes mutating operations per canonical user pair. Every
// interest write, match evaluation, chat allocation, and realization for a
// pair runs under that pair's lock, so two interests racing to complete a
// mutual match cannot interleave. Unrelated pairs never contend: entries are
// created on demand and reaped once the last holder releases.
type pairLocks struct {
	mu      sync.Mutex
	entries map[string]*pairLockEntry
}

type pairLockEntry struct {
	mu       sync.Mutex
	refCount int
}

func newPairLocks() *pairLocks {
	return &pairLocks{entries: make(map[string]*pairLockEntry)}
}

func (p *pairLocks) Lock(key string) {
	p.mu.Lock()
	entry, ok := p.entries[key]
	if !ok {
		entry = &pairLockEntry{}
		p.entries[key] = entry
	}
	entry.refCount++
	p.mu.Unlock()

	entry.mu.Lock()
}

func (p *pairLocks) Unlock(key string) {
	p.mu.Lock()
	entry, ok := p.entries[key]
	if !ok {
		p.mu.Unlock()
		panic("pairLocks: unlock of unheld key " + key)
	}
	entry.refCount--
	if entry.refCount == 0 {
		delete(p.entries, key)
	}
	p.mu.Unlock()

	entry.mu.Unlock()
}

package engine

import "sync"

// sessionLocks hands out one mutex per session id so state transitions for a
// session serialize in-process. The store's version CAS remains the backstop
// when multiple replicas share a database.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given session id, creating it on first use.
// Entries are retained for the life of the process; sessions are never
// deleted, so the map is bounded by session count.
func (l *sessionLocks) Lock(id string) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m.Unlock
}

package usecase

import "sync"

// dateLocks is a set of mutexes keyed by date. Entries are dropped once no
// goroutine holds or waits for them.
type dateLocks struct {
	mu    sync.Mutex
	byKey map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func (l *dateLocks) lock(key string) (unlock func()) {
	l.mu.Lock()
	if l.byKey == nil {
		l.byKey = make(map[string]*refMutex)
	}
	m, ok := l.byKey[key]
	if !ok {
		m = &refMutex{}
		l.byKey[key] = m
	}
	m.refs++
	l.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		l.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(l.byKey, key)
		}
		l.mu.Unlock()
	}
}

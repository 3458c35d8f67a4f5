package source

import "sync"

// Latest keeps only the response to the most recent request.
//
// Call Begin before issuing a request and Commit with the returned token when
// the response arrives. A Commit whose token has been superseded by a later
// Begin is dropped, so a slow response can never overwrite a newer one.
type Latest[T any] struct {
	mu      sync.Mutex
	issued  uint64
	applied uint64
	value   T
	ok      bool
}

// Begin issues a new generation token.
func (l *Latest[T]) Begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.issued++
	return l.issued
}

// Commit stores v if token is the newest issued. It reports whether v was kept.
func (l *Latest[T]) Commit(token uint64, v T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if token != l.issued || token <= l.applied {
		return false
	}
	l.applied = token
	l.value = v
	l.ok = true
	return true
}

// Current returns the last committed value.
func (l *Latest[T]) Current() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.ok
}

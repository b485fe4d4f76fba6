package expr

import "sync"

// memo caches one value per execution token.
//
// All access goes through getOrCompute, which trusts a value only under
// the token it was computed for. Executions that interleave on one node
// keep separate entries; release drops an execution's entry once it ends.
// Failed computations store nothing, so a later call may retry.
type memo[T any] struct {
	mu     sync.Mutex
	values map[string]T
}

// getOrCompute returns the value cached for token, computing it with fn on a miss.
// The lock is held during fn, so one initializer runs per token.
func (m *memo[T]) getOrCompute(token string, fn func() (T, error)) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := m.values[token]; ok {
		return v, nil
	}

	v, err := fn()
	if err != nil {
		var zero T
		return zero, err
	}

	if m.values == nil {
		m.values = make(map[string]T)
	}
	m.values[token] = v
	return v, nil
}

// cached returns the value for token without computing it.
func (m *memo[T]) cached(token string) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[token]
	return v, ok
}

// release drops the value cached for token.
func (m *memo[T]) release(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, token)
}

// size returns the number of live entries.
func (m *memo[T]) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}

// ReleaseExecution drops every value the nodes of e cached for token.
// Callers that reuse a tree across executions call it when an execution
// ends; a nil e is a no-op.
func ReleaseExecution(e Expression, token string) {
	switch n := e.(type) {
	case *Now:
		n.cache.release(token)
	case *Exists:
		n.results.release(token)
	case *And:
		ReleaseExecution(n.left, token)
		ReleaseExecution(n.right, token)
	case *Or:
		ReleaseExecution(n.left, token)
		ReleaseExecution(n.right, token)
	case *Not:
		ReleaseExecution(n.inner, token)
	case *Digest:
		ReleaseExecution(n.operand, token)
	}
}

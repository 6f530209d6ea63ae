package resilience

import "sync"

type flightCall struct {
	done chan struct{}
	val  any
	err  error
}

// SingleFlight collapses concurrent calls with the same key into one
// execution; followers block and receive the leader's result.
type SingleFlight struct {
	mu    sync.Mutex
	calls map[string]*flightCall
}

func NewSingleFlight() *SingleFlight {
	return &SingleFlight{calls: make(map[string]*flightCall)}
}

// Do runs fn once per in-flight key. The bool result reports whether the
// returned value was shared from another caller's execution.
func (s *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	s.mu.Lock()
	if s.calls == nil {
		s.calls = make(map[string]*flightCall)
	}
	if existing, ok := s.calls[key]; ok {
		s.mu.Unlock()
		<-existing.done
		return existing.val, existing.err, true
	}

	call := &flightCall{done: make(chan struct{})}
	s.calls[key] = call
	s.mu.Unlock()

	call.val, call.err = fn()

	s.mu.Lock()
	delete(s.calls, key)
	s.mu.Unlock()
	close(call.done)

	return call.val, call.err, false
}

package result

import (
	"sync"
)

// Token identifies one invocation of the runner against a slot. Tokens are
// monotonically increasing; a write carrying a superseded token is dropped.
type Token uint64

// Slot holds the current outcome of whatever run last wrote to it. It is the
// one piece of state shared between a runner invocation and the caller
// observing it: at most one invocation is the current writer, enforced by
// token equality so a late poll from a cancelled run can never overwrite a
// fresher run's state.
type Slot struct {
	mu      sync.Mutex
	token   Token
	current Outcome
	subs    map[int]chan Outcome
	nextSub int
}

// NewSlot creates a slot in the idle state
func NewSlot() *Slot {
	return &Slot{
		current: Idle(),
		subs:    make(map[int]chan Outcome),
	}
}

// Begin starts a new invocation, superseding all prior ones, and moves the
// slot to processing. Returns the token the invocation must present on every
// subsequent write.
func (s *Slot) Begin() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token++
	s.setLocked(Processing())
	return s.token
}

// Set writes an outcome on behalf of the invocation identified by tok.
// Returns false without mutating the slot when the invocation has been
// superseded by a newer Begin or a Reset.
func (s *Slot) Set(tok Token, o Outcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok != s.token {
		return false
	}
	s.setLocked(o)
	return true
}

// Reset returns the slot to idle and supersedes any in-flight invocation, so
// pending polls from it are discarded on arrival
func (s *Slot) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token++
	s.setLocked(Idle())
}

// Get returns the current outcome
func (s *Slot) Get() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Current checks whether tok still identifies the current invocation
func (s *Slot) Current(tok Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tok == s.token
}

// Subscribe returns a channel receiving every accepted outcome transition,
// starting with the current outcome, and a cancel function that must be
// called when the subscriber is done
func (s *Slot) Subscribe() (<-chan Outcome, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Buffered generously so a slow subscriber cannot stall a write; a full
	// subscriber misses intermediate transitions, never the write itself.
	ch := make(chan Outcome, 16)
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.current

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// setLocked updates the outcome and notifies subscribers. Caller holds mu.
func (s *Slot) setLocked(o Outcome) {
	s.current = o
	for _, ch := range s.subs {
		select {
		case ch <- o:
		default:
		}
	}
}

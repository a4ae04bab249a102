// Package statemachine backs the Player lifecycle with named
// states transitioned explicitly by their owner, rather than a polled loop:
// a poker server's state changes are all externally triggered (an action
// arrives, a hand starts), so there is nothing to gain from dispatching a
// state function on a schedule.
package statemachine

import (
	"sync"
)

// Named is a state with a stable name, so callers can report the current
// state without resorting to function-pointer comparison.
type Named[T any] struct {
	Name string
}

// StateMachine is a minimal thread-safe holder of an entity's current Named
// state.
type StateMachine[T any] struct {
	entity  *T
	current Named[T]
	mu      sync.RWMutex
}

// NewStateMachine creates a state machine for entity starting at initial.
func NewStateMachine[T any](entity *T, initial Named[T]) *StateMachine[T] {
	return &StateMachine[T]{entity: entity, current: initial}
}

// TransitionTo moves the machine into the given named state. Used for
// externally-triggered transitions (e.g. a hand start event moving a Player
// out of SPECTATING).
func (sm *StateMachine[T]) TransitionTo(state Named[T]) {
	sm.mu.Lock()
	sm.current = state
	sm.mu.Unlock()
}

// Name returns the name of the current state.
func (sm *StateMachine[T]) Name() string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.current.Name
}

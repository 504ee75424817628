// Package store provides a small reducer-driven state container.
//
// A Store holds one value of state S. The only way to change it is to
// Dispatch an action A, which runs the reducer and then notifies every
// subscribed listener with the new state. Reads never mutate.
//
//	s := store.New(State{}, reduce)
//	unsubscribe := s.Subscribe(func(st State, a Action) { ... })
//	defer unsubscribe()
//	s.Dispatch(Incremented{})
//
// Listeners run on the dispatching goroutine after the state lock has been
// released. Notifications for successive dispatches are delivered in
// dispatch order, so a listener must not call Dispatch synchronously.
package store

import (
	"context"
	"sort"
	"sync"
)

// Reducer maps the current state and an action to the next state.
// Reducers must not mutate memory reachable from the previous state.
type Reducer[S, A any] func(state S, action A) S

// Listener is called after every dispatch with the resulting state and the
// action that produced it.
type Listener[S, A any] func(state S, action A)

// Store is a reducer-driven state container. The zero value is not usable;
// create stores with New.
type Store[S, A any] struct {
	mu        sync.RWMutex
	state     S
	reduce    Reducer[S, A]
	listeners map[uint64]Listener[S, A]
	nextID    uint64

	// notifyMu serializes reduce+notify so listeners observe transitions
	// in the order they were applied.
	notifyMu sync.Mutex
}

// New creates a store holding initial and transitioning through reduce.
func New[S, A any](initial S, reduce Reducer[S, A]) *Store[S, A] {
	return &Store[S, A]{
		state:     initial,
		reduce:    reduce,
		listeners: make(map[uint64]Listener[S, A]),
	}
}

// State returns the current state.
func (s *Store[S, A]) State() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies action to the current state, notifies listeners and
// returns the resulting state.
func (s *Store[S, A]) Dispatch(action A) S {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.state = s.reduce(s.state, action)
	next := s.state
	listeners := s.snapshotLocked()
	s.mu.Unlock()

	for _, l := range listeners {
		l(next, action)
	}
	return next
}

// Subscribe registers l and returns a function that removes it.
// The returned function may be called more than once.
func (s *Store[S, A]) Subscribe(l Listener[S, A]) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Changes returns a channel that receives every state produced after the
// call until ctx is done, at which point the channel is closed.
//
// A consumer that falls behind loses the oldest pending states, never the
// newest one. buffer values below 1 are treated as 1.
func (s *Store[S, A]) Changes(ctx context.Context, buffer int) <-chan S {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan S, buffer)

	unsubscribe := s.Subscribe(func(state S, _ A) {
		select {
		case ch <- state:
			return
		default:
		}
		// Full: drop the oldest pending state to make room.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- state:
		default:
		}
	})

	go func() {
		<-ctx.Done()
		unsubscribe()
		// Wait for any in-flight notification before closing.
		s.notifyMu.Lock()
		close(ch)
		s.notifyMu.Unlock()
	}()

	return ch
}

// Len returns the number of registered listeners.
func (s *Store[S, A]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listeners)
}

func (s *Store[S, A]) snapshotLocked() []Listener[S, A] {
	ids := make([]uint64, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]Listener[S, A], 0, len(ids))
	for _, id := range ids {
		out = append(out, s.listeners[id])
	}
	return out
}

// Package counter holds the state for the counter page.
package counter

import "github.com/pthm/hxdemo/lib/store"

// State is the counter value.
type State struct {
	Value int `json:"value"`
}

// Event is a counter transition.
type Event interface {
	Type() string
}

type (
	Incremented   struct{}
	Decremented   struct{}
	IncrementedBy struct{ Amount int }
	Reset         struct{}
)

func (Incremented) Type() string   { return "counter/increment" }
func (Decremented) Type() string   { return "counter/decrement" }
func (IncrementedBy) Type() string { return "counter/incrementByAmount" }
func (Reset) Type() string         { return "counter/reset" }

// Reduce applies e to s.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case Incremented:
		s.Value++
	case Decremented:
		s.Value--
	case IncrementedBy:
		s.Value += e.Amount
	case Reset:
		s.Value = 0
	}
	return s
}

// Store is the counter store.
type Store struct {
	*store.Store[State, Event]
}

// NewStore returns a store starting at zero.
func NewStore() *Store {
	return &Store{Store: store.New(State{}, Reduce)}
}

// Value returns the current counter value.
func (s *Store) Value() int { return s.State().Value }

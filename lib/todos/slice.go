package todos

import (
	"slices"

	"github.com/pthm/hxdemo/lib/store"
)

// Event is one of the three fetch lifecycle outcomes.
type Event interface {
	Type() string
}

// Started is dispatched synchronously when a fetch is issued.
type Started struct {
	RequestID string
	Limit     int
}

// Succeeded carries the decoded payload of a successful fetch.
type Succeeded struct {
	RequestID string
	Payload   []TodoRecord
}

// Failed carries the user-visible message of a failed fetch.
type Failed struct {
	RequestID string
	Message   string
}

func (Started) Type() string   { return "todos/fetch/pending" }
func (Succeeded) Type() string { return "todos/fetch/fulfilled" }
func (Failed) Type() string    { return "todos/fetch/rejected" }

// Reduce applies a lifecycle event to s.
//
// Transitions are applied regardless of the current status: overlapping
// fetches each run their own started/settled pair against the shared state.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case Started:
		s.Status = StatusLoading
		s.Error = nil
	case Succeeded:
		s.Status = StatusIdle
		s.Error = nil
		s.List = concat(s.List, e.Payload)
	case Failed:
		s.Status = StatusIdle
		msg := e.Message
		s.Error = &msg
	}
	return s
}

// concat never reuses the backing array of prev, so earlier snapshots of
// the state stay intact.
func concat(prev, next []TodoRecord) []TodoRecord {
	out := make([]TodoRecord, 0, len(prev)+len(next))
	out = append(out, prev...)
	return append(out, next...)
}

// SelectStatus projects the fetch status.
func SelectStatus(s State) Status { return s.Status }

// SelectList projects a copy of the list.
func SelectList(s State) []TodoRecord {
	if s.List == nil {
		return []TodoRecord{}
	}
	return slices.Clone(s.List)
}

// SelectError projects the outstanding error, if any.
func SelectError(s State) (string, bool) {
	if s.Error == nil {
		return "", false
	}
	return *s.Error, true
}

// Store owns the TodosState of one session.
type Store struct {
	*store.Store[State, Event]
}

// NewStore creates a store in the initial state.
func NewStore() *Store {
	return &Store{Store: store.New(InitialState(), Reduce)}
}

// CurrentStatus returns the current fetch status.
func (s *Store) CurrentStatus() Status { return SelectStatus(s.State()) }

// CurrentList returns a copy of the current list.
func (s *Store) CurrentList() []TodoRecord { return SelectList(s.State()) }

// CurrentError returns the outstanding error message, if any.
func (s *Store) CurrentError() (string, bool) { return SelectError(s.State()) }

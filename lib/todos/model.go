// Package todos implements the todo loading slice: the remote todo source,
// the asynchronous fetch operation and the reducer that applies its
// started / succeeded / failed outcomes to a shared TodosState.
package todos

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Status is the two-valued fetch indicator.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
)

// DefaultLimit is the number of records requested by the "load todos"
// trigger when the caller does not choose one.
const DefaultLimit = 10

// FailureMessage is recorded in State.Error when a fetch fails.
const FailureMessage = "Failed to fetch todos."

// TodoRecord is a single todo as returned by the remote source.
type TodoRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// UnmarshalJSON accepts both string and numeric ids; numeric ids are kept in
// their decimal text form.
func (r *TodoRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        json.RawMessage `json:"id"`
		Title     string          `json:"title"`
		Completed bool            `json:"completed"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, err := decodeID(raw.ID)
	if err != nil {
		return err
	}
	*r = TodoRecord{ID: id, Title: raw.Title, Completed: raw.Completed}
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("todo id: %w", err)
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("todo id: %w", err)
	}
	return n.String(), nil
}

// State is the todo slice state. List only grows: every successful fetch
// appends its payload in arrival order.
type State struct {
	Status Status       `json:"status"`
	Error  *string      `json:"error"`
	List   []TodoRecord `json:"list"`
}

// InitialState returns the state a session starts with.
func InitialState() State {
	return State{
		Status: StatusIdle,
		List:   []TodoRecord{},
	}
}

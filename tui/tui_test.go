package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pthm/hxdemo/lib/todos"
)

type blockedSource struct{ release chan struct{} }

func (s blockedSource) List(ctx context.Context, limit int) ([]todos.TodoRecord, error) {
	<-s.release
	return []todos.TodoRecord{{ID: "1", Title: "write tests"}}, nil
}

func newModel(t *testing.T) (Model, *todos.Store, chan struct{}) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	release := make(chan struct{})
	t.Cleanup(func() {
		select {
		case <-release:
		default:
			close(release)
		}
	})
	store := todos.NewStore()
	return New(ctx, todos.NewFetcher(store, blockedSource{release}), 3), store, release
}

func key(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitialView(t *testing.T) {
	m, _, _ := newModel(t)

	view := m.View()
	if !strings.Contains(view, "No todos loaded.") {
		t.Errorf("view missing empty message:\n%s", view)
	}
	if !strings.Contains(view, "load 3") {
		t.Errorf("view missing help:\n%s", view)
	}
}

func TestLoadKeyStartsFetch(t *testing.T) {
	for _, k := range []string{"l", "enter"} {
		t.Run(k, func(t *testing.T) {
			m, store, _ := newModel(t)

			next, _ := m.Update(key(k))
			if store.CurrentStatus() != todos.StatusLoading {
				t.Fatalf("status = %s, want loading", store.CurrentStatus())
			}
			if got := next.(Model).state.Status; got != todos.StatusLoading {
				t.Errorf("model status = %s", got)
			}
		})
	}
}

func TestLoadIgnoredWhileLoading(t *testing.T) {
	m, store, _ := newModel(t)
	var events int
	store.Subscribe(func(todos.State, todos.Event) { events++ })

	next, _ := m.Update(key("l"))
	next.Update(key("l"))

	if events != 1 {
		t.Errorf("events = %d, want 1", events)
	}
}

func TestStateMessagesRender(t *testing.T) {
	m, _, _ := newModel(t)
	msg := todos.FailureMessage
	st := todos.State{
		Status: todos.StatusIdle,
		Error:  &msg,
		List: []todos.TodoRecord{
			{ID: "1", Title: "open item"},
			{ID: "2", Title: "closed item", Completed: true},
		},
	}

	next, cmd := m.Update(stateMsg(st))
	if cmd == nil {
		t.Error("expected a command waiting for the next change")
	}
	view := next.View()
	for _, want := range []string{"open item", "closed item", msg, boxChecked, "2 loaded"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestNextDeliversStoreChanges(t *testing.T) {
	m, store, _ := newModel(t)
	cmd := m.Init()

	store.Dispatch(todos.Started{Limit: 1})
	msg := cmd()
	st, ok := msg.(stateMsg)
	if !ok {
		t.Fatalf("msg = %T, want stateMsg", msg)
	}
	if st.Status != todos.StatusLoading {
		t.Errorf("status = %s", st.Status)
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newModel(t)

	next, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if next.View() != "" {
		t.Error("view should be empty after quit")
	}
}

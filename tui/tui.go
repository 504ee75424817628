// Package tui is a terminal view of the todo store.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pthm/hxdemo/lib/todos"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Padding(0, 1)
	loadingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	doneStyle    = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

const (
	boxUnchecked = "☐"
	boxChecked   = "☑"
)

type stateMsg todos.State

type closedMsg struct{}

// Model renders the store and issues fetches on key presses.
type Model struct {
	ctx     context.Context
	fetcher *todos.Fetcher
	limit   int
	changes <-chan todos.State

	state    todos.State
	closed   bool
	quitting bool
}

// New binds a model to the fetcher's store. The subscription ends with ctx.
func New(ctx context.Context, f *todos.Fetcher, limit int) Model {
	if limit <= 0 {
		limit = todos.DefaultLimit
	}
	return Model{
		ctx:     ctx,
		fetcher: f,
		limit:   limit,
		changes: f.Store().Changes(ctx, 8),
		state:   f.Store().State(),
	}
}

// Run shows the model until the user quits or ctx is done.
func Run(ctx context.Context, f *todos.Fetcher, limit int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(New(ctx, f, limit), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd { return m.next() }

func (m Model) next() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return stateMsg(st)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "l", "enter":
			if m.state.Status != todos.StatusLoading {
				m.fetcher.FetchTodos(m.ctx, m.limit)
				m.state = m.fetcher.Store().State()
			}
			return m, nil
		}
	case stateMsg:
		m.state = todos.State(msg)
		return m, m.next()
	case closedMsg:
		m.closed = true
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	list := todos.SelectList(m.state)

	status := idleStyle.Render(string(m.state.Status))
	if m.state.Status == todos.StatusLoading {
		status = loadingStyle.Render(string(m.state.Status) + "...")
	}
	fmt.Fprintf(&b, "%s  %s  %s\n\n", titleStyle.Render("Todos"), status, mutedStyle.Render(fmt.Sprintf("%d loaded", len(list))))

	if msg, ok := todos.SelectError(m.state); ok {
		b.WriteString(errorStyle.Render(msg) + "\n\n")
	}

	if len(list) == 0 {
		b.WriteString(mutedStyle.Render("No todos loaded.") + "\n")
	}
	for _, t := range list {
		if t.Completed {
			fmt.Fprintf(&b, "%s %s\n", boxChecked, doneStyle.Render(t.Title))
		} else {
			fmt.Fprintf(&b, "%s %s\n", boxUnchecked, t.Title)
		}
	}

	b.WriteString(helpStyle.Render(fmt.Sprintf("l/enter: load %d  •  q: quit", m.limit)))
	return b.String()
}

package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/state"
)

// Model is the main bubbletea model for the TUI.
// It renders from the store's state and changes it only by dispatching intents.
type Model struct {
	// Dependencies (pointers first for alignment)
	store *state.Store
	err   error

	// Components (structs with pointers)
	keys     KeyMap
	styles   Styles
	help     help.Model
	input    textinput.Model
	snapshot state.State

	confirmID string
	notice    string

	// Numeric state (smaller types last)
	mode      Mode
	cursor    int
	width     int
	height    int
	noticeSeq int
}

// New creates a new TUI Model over store.
func New(store *state.Store) *Model {
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 500

	return &Model{
		store:    store,
		keys:     DefaultKeyMap(),
		styles:   DefaultStyles(),
		help:     help.New(),
		input:    ti,
		snapshot: store.State(),
		mode:     ModeNormal,
	}
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Mode returns the current UI mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// Cursor returns the index of the selected row among the visible tasks.
func (m *Model) Cursor() int {
	return m.cursor
}

// Err returns the last error shown inline, if any.
func (m *Model) Err() error {
	return m.err
}

// visible returns the tasks shown under the current filter.
func (m *Model) visible() []domain.Task {
	return m.snapshot.Visible()
}

// SelectedTask returns the task under the cursor.
func (m *Model) SelectedTask() (domain.Task, bool) {
	visible := m.visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return domain.Task{}, false
	}
	return visible[m.cursor], true
}

// refresh re-reads the store and keeps the cursor within the visible rows.
func (m *Model) refresh() {
	m.snapshot = m.store.State()
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// dispatch raises an intent and records any rejection for display.
func (m *Model) dispatch(in domain.Intent) error {
	err := m.store.Dispatch(in)
	m.err = err
	m.refresh()
	return err
}

// selectTask moves the cursor onto the task with id if it is visible.
func (m *Model) selectTask(id string) {
	for i, task := range m.visible() {
		if task.ID == id {
			m.cursor = i
			return
		}
	}
}

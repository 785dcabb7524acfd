package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/tasklist/internal/domain"
)

// noticeTimeout is how long a transient notice stays visible.
const noticeTimeout = 3 * time.Second

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-12, 10)
		return m, nil

	case MsgRehydrated:
		var selected string
		if task, ok := m.SelectedTask(); ok {
			selected = task.ID
		}
		m.refresh()
		m.selectTask(selected)
		if m.mode == ModeConfirm && m.snapshot.Tasks.Index(m.confirmID) < 0 {
			m.mode = ModeNormal
			m.confirmID = ""
		}
		return m, m.showNotice("Reloaded from storage")

	case MsgClearNotice:
		if msg.Seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	}

	if m.mode == ModeInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// showNotice displays text until noticeTimeout passes.
func (m *Model) showNotice(text string) tea.Cmd {
	m.noticeSeq++
	m.notice = text
	seq := m.noticeSeq
	return tea.Tick(noticeTimeout, func(time.Time) tea.Msg {
		return MsgClearNotice{Seq: seq}
	})
}

// handleKeyMsg routes key presses by mode.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeInput:
		return m.handleInputMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	case ModeNormal:
		return m.handleNormalMode(msg)
	}
	return m, nil
}

// handleNormalMode handles keys in normal mode.
func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(len(m.visible())-1, 0)
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.mode = ModeInput
		m.err = nil
		m.input.Reset()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Toggle):
		task, ok := m.SelectedTask()
		if !ok {
			return m, nil
		}
		_ = m.dispatch(domain.ToggleCompleted{ID: task.ID})
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		task, ok := m.SelectedTask()
		if !ok {
			return m, nil
		}
		m.mode = ModeConfirm
		m.confirmID = task.ID
		return m, nil

	case key.Matches(msg, m.keys.CycleFilter):
		_ = m.dispatch(domain.SetFilter{Value: m.snapshot.Filter.Next()})
		return m, nil

	case key.Matches(msg, m.keys.FilterAll):
		_ = m.dispatch(domain.SetFilter{Value: domain.FilterAll})
		return m, nil

	case key.Matches(msg, m.keys.FilterActive):
		_ = m.dispatch(domain.SetFilter{Value: domain.FilterActive})
		return m, nil

	case key.Matches(msg, m.keys.FilterCompleted):
		_ = m.dispatch(domain.SetFilter{Value: domain.FilterCompleted})
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		m.help.ShowAll = true
		return m, nil
	}

	return m, nil
}

// handleInputMode handles keys while typing a new task.
func (m *Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.err = nil
		m.input.Blur()
		m.input.Reset()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if err := m.dispatch(domain.AddTask{Text: m.input.Value()}); err != nil {
			// Keep the dialog open so the text can be fixed.
			return m, nil
		}
		tasks := m.snapshot.Tasks
		m.selectTask(tasks.At(tasks.Len() - 1).ID)
		m.mode = ModeNormal
		m.input.Blur()
		m.input.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleConfirmMode handles keys in the delete confirmation dialog.
func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), msg.String() == "n", msg.String() == "N":
		m.mode = ModeNormal
		m.confirmID = ""
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		id := m.confirmID
		m.mode = ModeNormal
		m.confirmID = ""
		_ = m.dispatch(domain.DeleteTask{ID: id})
		return m, nil
	}

	return m, nil
}

// handleHelpMode handles keys in the help overlay.
func (m *Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Quit):
		m.mode = ModeNormal
		m.help.ShowAll = false
	}
	return m, nil
}

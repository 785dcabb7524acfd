package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/runoshun/tasklist/internal/domain"
)

// View renders the model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.viewList())

	switch m.mode {
	case ModeInput:
		b.WriteString("\n")
		b.WriteString(m.viewInputDialog())
	case ModeConfirm:
		b.WriteString("\n")
		b.WriteString(m.viewConfirmDialog())
	case ModeNormal, ModeHelp:
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.ErrorMsg.Render("Error: " + m.err.Error()))
	} else if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.NoticeMsg.Render(m.notice))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(m.help.View(m.keys)))

	return m.styles.App.Render(b.String())
}

// viewHeader renders the title, counts and filter tabs.
func (m *Model) viewHeader() string {
	summary := domain.Summarize(m.snapshot.Tasks)
	counts := fmt.Sprintf("%d %s left · %d completed",
		summary.Active, plural(summary.Active, "item", "items"), summary.Completed)

	title := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.HeaderText.Render("tasklist"),
		"  ",
		m.styles.HeaderCount.Render(counts),
	)

	tabs := make([]string, 0, len(domain.AllStatusFilters()))
	for _, f := range domain.AllStatusFilters() {
		if f == m.snapshot.Filter {
			tabs = append(tabs, m.styles.FilterTabActive.Render(f.Display()))
			continue
		}
		tabs = append(tabs, m.styles.FilterTab.Render(f.Display()))
	}

	return m.styles.Header.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
	))
}

// viewList renders the visible tasks, one per line.
func (m *Model) viewList() string {
	visible := m.visible()
	if len(visible) == 0 {
		if m.snapshot.Tasks.Len() == 0 {
			return m.styles.Empty.Render("No tasks yet. Press a to add one.")
		}
		return m.styles.Empty.Render(fmt.Sprintf("No %s tasks.", strings.ToLower(m.snapshot.Filter.Display())))
	}

	start, end := m.listWindow(len(visible))
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderTask(visible[i], i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

// listWindow returns the slice of rows that fits the terminal height,
// keeping the cursor visible.
func (m *Model) listWindow(n int) (int, int) {
	// Header, tabs, margins, footer and a dialog.
	rows := m.height - 12
	if m.height == 0 || rows >= n {
		return 0, n
	}
	rows = max(rows, 1)
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	return start, start + rows
}

// renderTask renders a single row.
func (m *Model) renderTask(task domain.Task, selected bool) string {
	cursor := "  "
	if selected {
		cursor = m.styles.CursorSelected.Render("> ")
	}

	checkbox := m.styles.CheckboxOpen.Render("[ ]")
	if task.Completed {
		checkbox = m.styles.CheckboxDone.Render("[x]")
	}

	text := task.Text
	if m.width > 0 {
		// App padding, cursor, checkbox and a space.
		if avail := m.width - 4 - 2 - 4; avail > 0 {
			text = truncate.StringWithTail(text, uint(avail), "…") //nolint:gosec // avail is positive
		}
	}

	style := m.styles.TaskNormal
	switch {
	case selected:
		style = m.styles.TaskSelected
	case task.Completed:
		style = m.styles.TaskDone
	}
	return cursor + checkbox + " " + style.Render(text)
}

// viewInputDialog renders the new task dialog.
func (m *Model) viewInputDialog() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.DialogTitle.Render("New task"),
		m.styles.InputPrompt.Render("> ")+m.input.View(),
		m.styles.DialogPrompt.Render("enter add · esc cancel"),
	)
	return m.styles.Dialog.Render(content)
}

// viewConfirmDialog renders the delete confirmation.
func (m *Model) viewConfirmDialog() string {
	task, _ := m.snapshot.Tasks.Find(m.confirmID)
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.DialogTitle.Render("Delete task?"),
		task.Text,
		m.styles.DialogPrompt.Render("y confirm · n cancel"),
	)
	return m.styles.Dialog.Render(content)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

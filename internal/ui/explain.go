package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/deepanshuvermaa/dripfeed/internal/model"
)

func (m Model) updateExplaining(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "b":
		// A still-pending explanation is simply abandoned; its result message
		// arrives later and only updates text the user is no longer viewing.
		m.mode = model.ModeContent
		return m, nil
	case "q":
		m.store.Close()
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) viewExplaining() string {
	head, _ := m.queue.Head()

	body := m.explainText
	if m.explainBusy {
		body = m.spin.View() + " Thinking..."
	}

	width := min(70, max(40, m.width-4))
	card := lipgloss.JoinVertical(lipgloss.Left,
		OverlayTitle.Render("Dive Deeper"),
		"",
		CardMeta.Width(width).Render(head.Fact),
		"",
		lipgloss.NewStyle().Width(width).Render(body),
		"",
		HelpStyle.Render("[esc] back to feed"),
	)
	return m.center(Card.Width(width + 6).Render(card))
}

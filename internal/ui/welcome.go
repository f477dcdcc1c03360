package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/deepanshuvermaa/dripfeed/internal/model"
)

func (m Model) updateWelcome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.store.Close()
		return m, tea.Quit
	default:
		m.mode = model.ModePreferences
		m.prefsFocus = focusName
		m.nameInput.Focus()
		return m, nil
	}
}

func (m Model) viewWelcome() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		TitleStyle.Render("💧 Dripfeed"),
		SubtitleStyle.Render("Bite-sized knowledge, one drip at a time."),
		"",
		SubtitleStyle.Render("AI-generated facts tuned to your interests,"),
		SubtitleStyle.Render("with captions worth screenshotting."),
		"",
		HelpStyle.Render("press any key to get started · q to quit"),
	)
	return m.center(body)
}

// center places content in the middle of the terminal.
func (m Model) center(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

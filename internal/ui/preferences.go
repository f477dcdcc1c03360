package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/deepanshuvermaa/dripfeed/internal/logging"
	"github.com/deepanshuvermaa/dripfeed/internal/model"
)

// Topics offered on the preferences screen.
var Topics = []string{
	"Science & Tech", "History", "Geopolitics", "Art & Culture",
	"Nature & Animals", "Sports", "Pop Culture", "Crypto & Finance",
	"Weird Facts", "Philosophy",
}

// Regions is a representative country list for the region picker.
var Regions = []string{
	"United States", "India", "United Kingdom", "Canada", "Australia", "Germany",
	"France", "Brazil", "Japan", "Nigeria", "South Africa", "Mexico", "Singapore",
}

func (m Model) updatePreferences(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.cyclePrefsFocus(1)
		return m, nil
	case "shift+tab":
		m.cyclePrefsFocus(-1)
		return m, nil
	case "ctrl+s":
		return m.submitPreferences()
	}

	switch m.prefsFocus {
	case focusName:
		if msg.String() == "enter" {
			m.cyclePrefsFocus(1)
			return m, nil
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd

	case focusTopics:
		switch msg.String() {
		case "up", "k":
			if m.topicCursor > 0 {
				m.topicCursor--
			}
		case "down", "j":
			if m.topicCursor < len(Topics)-1 {
				m.topicCursor++
			}
		case " ":
			topic := Topics[m.topicCursor]
			if m.prefsSel[topic] {
				delete(m.prefsSel, topic)
			} else {
				m.prefsSel[topic] = true
			}
		case "enter":
			return m.submitPreferences()
		}

	case focusRegion:
		switch msg.String() {
		case "left", "h":
			m.regionIdx = (m.regionIdx + len(Regions) - 1) % len(Regions)
		case "right", "l":
			m.regionIdx = (m.regionIdx + 1) % len(Regions)
		case "enter":
			return m.submitPreferences()
		}
	}

	return m, nil
}

func (m *Model) cyclePrefsFocus(dir int) {
	m.prefsFocus = prefsFocus((int(m.prefsFocus) + dir + 3) % 3)
	if m.prefsFocus == focusName {
		m.nameInput.Focus()
	} else {
		m.nameInput.Blur()
	}
}

// submitPreferences validates and, on success, persists everything and kicks
// off the initial load. Invalid input leaves all state untouched.
func (m Model) submitPreferences() (tea.Model, tea.Cmd) {
	username := strings.TrimSpace(m.nameInput.Value())
	if username == "" && m.user.Username != "" {
		username = m.user.Username
	}

	var selected []string
	for _, t := range Topics {
		if m.prefsSel[t] {
			selected = append(selected, t)
		}
	}

	switch {
	case len(selected) == 0:
		m.prefsErr = "Pick at least one topic."
		return m, nil
	case len(username) < 3:
		m.prefsErr = "Username needs at least 3 characters."
		return m, nil
	}

	region := Regions[m.regionIdx]
	m.prefs = selected
	m.region = region
	m.prefsErr = ""

	if err := m.store.SavePreferences(selected); err != nil {
		logging.Warn("preferences save failed", "error", err)
	}
	m.user = m.tracker.SetIdentity(username, region)

	m.mode = model.ModeLoading
	return m, m.loadInitial()
}

func (m Model) viewPreferences() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Customize Your Feed") + "\n")
	b.WriteString(SubtitleStyle.Render("First, tell us a bit about yourself.") + "\n\n")

	nameLabel := "  Username"
	if m.prefsFocus == focusName {
		nameLabel = "> Username"
	}
	b.WriteString(nameLabel + "\n" + m.nameInput.View() + "\n\n")

	topicsLabel := "  Topics (space to toggle)"
	if m.prefsFocus == focusTopics {
		topicsLabel = "> Topics (space to toggle)"
	}
	b.WriteString(topicsLabel + "\n")
	for i, t := range Topics {
		style := TopicOff
		if m.prefsSel[t] {
			style = TopicOn
		}
		marker := "  "
		if m.prefsFocus == focusTopics && i == m.topicCursor {
			marker = "› "
		}
		b.WriteString(marker + style.Render(t) + "\n")
	}
	b.WriteString("\n")

	regionLabel := "  Region (←/→)"
	if m.prefsFocus == focusRegion {
		regionLabel = "> Region (←/→)"
	}
	b.WriteString(regionLabel + "\n  " + SelectedItem.Render(Regions[m.regionIdx]) + "\n")

	if m.prefsErr != "" {
		b.WriteString("\n" + ErrorStyle.Render(m.prefsErr) + "\n")
	}

	b.WriteString(HelpStyle.Render("[tab] switch section  [enter/ctrl+s] start my feed"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/deepanshuvermaa/dripfeed/internal/logging"
	"github.com/deepanshuvermaa/dripfeed/internal/model"
	"github.com/deepanshuvermaa/dripfeed/internal/profile"
)

func (m Model) updateProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editingName {
		switch msg.String() {
		case "esc":
			m.editingName = false
			m.editInput.Blur()
			return m, nil
		case "enter":
			name := strings.TrimSpace(m.editInput.Value())
			if len(name) < 3 {
				return m, nil
			}
			m.user = m.tracker.SetIdentity(name, "")
			m.editingName = false
			m.editInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.editInput, cmd = m.editInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc", "p", "b":
		m.mode = model.ModeContent
		return m, nil

	case "q":
		m.store.Close()
		return m, tea.Quit

	case "e":
		m.editingName = true
		m.editInput.SetValue(m.user.Username)
		m.editInput.Focus()
		return m, nil

	case "up", "k":
		if m.favCursor > 0 {
			m.favCursor--
		}
		return m, nil

	case "down", "j":
		if m.favCursor < len(m.favorites)-1 {
			m.favCursor++
		}
		return m, nil

	case "x":
		return m.removeFavorite()
	}

	return m, nil
}

// removeFavorite drops the highlighted favorite and resyncs the counter.
// Already-unlocked favorite badges stay unlocked.
func (m Model) removeFavorite() (tea.Model, tea.Cmd) {
	if m.favCursor >= len(m.favorites) {
		return m, nil
	}
	m.favorites = append(m.favorites[:m.favCursor], m.favorites[m.favCursor+1:]...)
	if m.favCursor >= len(m.favorites) && m.favCursor > 0 {
		m.favCursor--
	}
	if err := m.store.SaveFavorites(m.favorites); err != nil {
		logging.Warn("favorites save failed", "error", err)
	}
	user, fresh := m.tracker.SyncFavorites(len(m.favorites))
	m.user = user
	cmd := m.showToast(fresh)
	return m, cmd
}

func (m Model) viewProfile() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("👤 "+m.user.Username) + "\n")
	b.WriteString(SubtitleStyle.Render(m.user.Region) + "\n\n")

	if m.editingName {
		b.WriteString("New username: " + m.editInput.View() + "\n")
		b.WriteString(HelpStyle.Render("[enter] save  [esc] cancel") + "\n")
	}

	b.WriteString(fmt.Sprintf("Viewed %s   Favorites %s   Comments %s   Created %s\n\n",
		StatValue.Render(fmt.Sprint(m.user.DripsViewed)),
		StatValue.Render(fmt.Sprint(m.user.FavoritesSaved)),
		StatValue.Render(fmt.Sprint(m.user.CommentsMade)),
		StatValue.Render(fmt.Sprint(m.user.DripsCreated)),
	))

	b.WriteString(OverlayTitle.Render("Achievements") + "\n")
	unlocked := make(map[string]bool)
	for _, u := range m.store.UnlockedAchievements() {
		unlocked[u.AchievementID] = true
	}
	for _, a := range profile.Achievements {
		line := fmt.Sprintf("%s %s — %s", a.Icon, a.Title, a.Description)
		if unlocked[a.ID] {
			b.WriteString(BadgeUnlocked.Render(line) + "\n")
		} else {
			b.WriteString(BadgeLocked.Render(line) + "\n")
		}
	}
	b.WriteString("\n")

	b.WriteString(OverlayTitle.Render("Favorites") + "\n")
	if len(m.favorites) == 0 {
		b.WriteString(SubtitleStyle.Render("Nothing saved yet. Press f on a drip you like.") + "\n")
	}
	for i, f := range m.favorites {
		line := truncate(f.Fact, max(20, m.width-8))
		if i == m.favCursor {
			b.WriteString(SelectedItem.Render(line) + "\n")
		} else {
			b.WriteString(NormalItem.Render(line) + "\n")
		}
	}

	if m.toast != "" {
		b.WriteString("\n" + Toast.Render(m.toast) + "\n")
	}

	b.WriteString(HelpStyle.Render("[↑↓] favorites  [x] unfavorite  [e] edit username  [esc] back"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/deepanshuvermaa/dripfeed/internal/genai"
	"github.com/deepanshuvermaa/dripfeed/internal/logging"
	"github.com/deepanshuvermaa/dripfeed/internal/model"
	"github.com/deepanshuvermaa/dripfeed/internal/queue"
)

func (m Model) updateContent(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.commentsOpen {
		return m.updateComments(msg)
	}

	switch msg.String() {
	case "q":
		m.store.Close()
		return m, tea.Quit

	case "n", "right", " ":
		if !m.queue.Advance() {
			return m, nil
		}
		return m, tea.Tick(queue.SettleDelay, func(time.Time) tea.Msg {
			return advanceSettledMsg{}
		})

	case "r":
		if m.refreshing || m.queue.FetchInFlight() {
			return m, nil
		}
		m.refreshing = true
		return m, m.refreshAll()

	case "f":
		return m.toggleFavorite()

	case "c":
		m.commentsOpen = true
		m.commentInput.Focus()
		return m, nil

	case "e":
		return m.startExplain(genai.ExplainSimple)

	case "d":
		return m.startExplain(genai.ExplainDeep)

	case "u":
		m.mode = model.ModeUploading
		m.uploadErr = ""
		m.uploadFocus = uploadFact
		m.factArea.Focus()
		return m, nil

	case "p":
		m.mode = model.ModeProfile
		m.favCursor = 0
		return m, nil
	}

	return m, nil
}

func (m Model) refreshAll() tea.Cmd {
	ctrl, prefs, region := m.queue, m.prefs, m.region
	return func() tea.Msg {
		ok := ctrl.RefreshAll(context.Background(), prefs, region)
		return refreshDoneMsg{OK: ok}
	}
}

// toggleFavorite adds or removes the current drip from the favorites
// collection and resyncs the counter to the collection size.
func (m Model) toggleFavorite() (tea.Model, tea.Cmd) {
	head, ok := m.queue.Head()
	if !ok {
		return m, nil
	}

	removed := false
	for i, f := range m.favorites {
		if f.ID == head.ID {
			m.favorites = append(m.favorites[:i], m.favorites[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		m.favorites = append(m.favorites, head)
	}

	if err := m.store.SaveFavorites(m.favorites); err != nil {
		logging.Warn("favorites save failed", "error", err)
	}

	user, fresh := m.tracker.SyncFavorites(len(m.favorites))
	m.user = user
	cmd := m.showToast(fresh)
	return m, cmd
}

func (m Model) startExplain(mode genai.ExplainMode) (tea.Model, tea.Cmd) {
	head, ok := m.queue.Head()
	if !ok {
		return m, nil
	}

	m.mode = model.ModeExplaining
	m.explainBusy = true
	m.explainText = ""

	src := m.source
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		text, err := src.Explain(ctx, head.Fact, mode)
		if err != nil {
			logging.Warn("explain failed", "mode", mode, "error", err)
			return explainDoneMsg{Text: genai.Apology}
		}
		return explainDoneMsg{Text: text}
	}
}

func (m Model) updateComments(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.commentsOpen = false
		m.commentInput.Blur()
		m.commentInput.Reset()
		return m, nil

	case "enter":
		return m.submitComment()
	}

	var cmd tea.Cmd
	m.commentInput, cmd = m.commentInput.Update(msg)
	return m, cmd
}

func (m Model) submitComment() (tea.Model, tea.Cmd) {
	head, ok := m.queue.Head()
	if !ok {
		return m, nil
	}
	text := strings.TrimSpace(m.commentInput.Value())
	if text == "" {
		return m, nil
	}

	now := time.Now().UnixMilli()
	c := model.Comment{
		ID:        strconv.FormatInt(now, 10),
		ContentID: head.ID,
		Author:    m.user.Username,
		Text:      text,
		Timestamp: now,
	}
	m.comments[head.ID] = append(m.comments[head.ID], c)
	if err := m.store.SaveComments(m.comments); err != nil {
		logging.Warn("comments save failed", "error", err)
	}
	m.commentInput.Reset()

	user, fresh := m.tracker.RecordComment()
	m.user = user
	cmd := m.showToast(fresh)
	return m, cmd
}

func (m Model) viewContent() string {
	head, ok := m.queue.Head()
	if !ok {
		return m.center(SubtitleStyle.Render("Nothing to show yet."))
	}

	var sections []string

	headerText := fmt.Sprintf("  💧 Dripfeed  ·  %s  ·  %d queued", m.user.Username, m.queue.Len())
	if m.refreshing {
		headerText += "  ·  refreshing " + m.spin.View()
	}
	sections = append(sections, Header.Width(m.width).Render(headerText))

	if m.toast != "" {
		sections = append(sections, Toast.Render(m.toast))
	}
	if m.warning != "" {
		sections = append(sections, WarningBanner.Render("⚠ "+m.warning))
	}

	sections = append(sections, m.renderCard(head))

	if m.commentsOpen {
		sections = append(sections, m.renderComments(head))
	} else {
		status := "  [n] next  [f] favorite  [c] comments  [e] explain  [d] deeper  [u] create  [p] profile  [r] refresh  [q] quit"
		sections = append(sections, StatusBar.Width(m.width).Render(status))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderCard(d model.Drip) string {
	width := min(64, max(40, m.width-4))

	var b strings.Builder
	b.WriteString(CardFact.Width(width - 6).Render(d.Fact))
	b.WriteString("\n\n")
	b.WriteString(CardCaption.Width(width - 6).Render(d.FunnyCaption))
	b.WriteString("\n\n")

	media := fmt.Sprintf("[%s] %s", d.MediaKind, truncate(d.MediaURL, width-14))
	b.WriteString(CardMeta.Render(media))

	if d.IsUserGenerated {
		b.WriteString("\n" + AuthorBadge.Render("✦ by "+d.Author))
	}
	if m.isFavorite(d.ID) {
		b.WriteString("\n" + CardMeta.Render("♥ in your favorites"))
	}
	if n := len(m.comments[d.ID]); n > 0 {
		b.WriteString("\n" + CardMeta.Render(fmt.Sprintf("💬 %d comments", n)))
	}

	return Card.Width(width).Render(b.String())
}

func (m Model) renderComments(d model.Drip) string {
	var b strings.Builder
	b.WriteString(OverlayTitle.Render("Comments") + "\n")

	list := m.comments[d.ID]
	if len(list) == 0 {
		b.WriteString(SubtitleStyle.Render("No comments yet. Be the first!") + "\n")
	}
	for _, c := range list {
		b.WriteString(fmt.Sprintf("%s %s\n",
			AuthorBadge.Render(c.Author+":"),
			c.Text))
	}
	b.WriteString("\n" + m.commentInput.View() + "\n")
	b.WriteString(HelpStyle.Render("[enter] post  [esc] close"))
	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

func (m Model) isFavorite(id string) bool {
	for _, f := range m.favorites {
		if f.ID == id {
			return true
		}
	}
	return false
}

func (m Model) viewLoading() string {
	return m.center(lipgloss.JoinVertical(lipgloss.Center,
		m.spin.View()+" Brewing fresh drips...",
		SubtitleStyle.Render("This can take a few seconds."),
	))
}

func (m Model) updateError(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.store.Close()
		return m, tea.Quit
	case "r", "enter":
		m.mode = model.ModeLoading
		m.errText = ""
		return m, m.loadInitial()
	case "p":
		m.mode = model.ModePreferences
		m.prefsFocus = focusName
		m.nameInput.Focus()
		return m, nil
	}
	return m, nil
}

func (m Model) viewError() string {
	return m.center(lipgloss.JoinVertical(lipgloss.Center,
		ErrorStyle.Render("Something went wrong"),
		"",
		SubtitleStyle.Render(m.errText),
		"",
		HelpStyle.Render("[r] retry  [p] change preferences  [q] quit"),
	))
}

func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

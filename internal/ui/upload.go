package ui

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/deepanshuvermaa/dripfeed/internal/logging"
	"github.com/deepanshuvermaa/dripfeed/internal/model"
)

// maxUploadBytes caps media files users attach to their own drips.
const maxUploadBytes = 10 * 1024 * 1024

func (m Model) updateUploading(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = model.ModeContent
		m.resetUploader()
		return m, nil

	case "tab":
		m.cycleUploadFocus(1)
		return m, nil

	case "shift+tab":
		m.cycleUploadFocus(-1)
		return m, nil

	case "ctrl+s":
		return m.submitUpload()
	}

	var cmd tea.Cmd
	switch m.uploadFocus {
	case uploadFact:
		m.factArea, cmd = m.factArea.Update(msg)
	case uploadCaption:
		m.captionArea, cmd = m.captionArea.Update(msg)
	case uploadMedia:
		m.mediaInput, cmd = m.mediaInput.Update(msg)
	case uploadKind:
		if msg.String() == " " || msg.String() == "left" || msg.String() == "right" {
			m.uploadVideo = !m.uploadVideo
		}
	}
	return m, cmd
}

func (m *Model) cycleUploadFocus(dir int) {
	m.uploadFocus = uploadFocus((int(m.uploadFocus) + dir + 4) % 4)

	m.factArea.Blur()
	m.captionArea.Blur()
	m.mediaInput.Blur()
	switch m.uploadFocus {
	case uploadFact:
		m.factArea.Focus()
	case uploadCaption:
		m.captionArea.Focus()
	case uploadMedia:
		m.mediaInput.Focus()
	}
}

func (m *Model) resetUploader() {
	m.factArea.Reset()
	m.captionArea.Reset()
	m.mediaInput.Reset()
	m.uploadVideo = false
	m.uploadErr = ""
	m.uploadFocus = uploadFact
}

// submitUpload validates the form, inlines the media file as a data URL, and
// prepends the new drip. Any failure leaves the form intact with an inline
// error so nothing typed is lost.
func (m Model) submitUpload() (tea.Model, tea.Cmd) {
	fact := strings.TrimSpace(m.factArea.Value())
	caption := strings.TrimSpace(m.captionArea.Value())
	path := strings.TrimSpace(m.mediaInput.Value())

	if fact == "" || caption == "" || path == "" {
		m.uploadErr = "Fact, caption, and media file are all required."
		return m, nil
	}

	mediaURL, kind, err := loadMediaFile(path)
	if err != nil {
		m.uploadErr = err.Error()
		return m, nil
	}
	if m.uploadVideo {
		kind = model.MediaVideo
	}

	d, err := m.queue.SubmitUserItem(fact, caption, mediaURL, kind, m.user.Username)
	if err != nil {
		m.uploadErr = err.Error()
		return m, nil
	}
	logging.Info("user drip created", "id", d.ID)

	user, fresh := m.tracker.RecordCreated()
	m.user = user

	m.mode = model.ModeContent
	m.resetUploader()
	cmd := m.showToast(fresh)
	return m, cmd
}

// loadMediaFile reads a local file and returns it as an inline data URL plus
// the media kind inferred from the extension.
func loadMediaFile(path string) (string, model.MediaKind, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", "", fmt.Errorf("can't read %s", path)
	}
	if info.Size() > maxUploadBytes {
		return "", "", fmt.Errorf("media is too large, max 10MB")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("can't read %s", path)
	}

	mime, kind := mediaType(path)
	url := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
	return url, kind, nil
}

func mediaType(path string) (string, model.MediaKind) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".mov", ".webm", ".mkv":
		return "video/mp4", model.MediaVideo
	case ".png":
		return "image/png", model.MediaImage
	case ".gif":
		return "image/gif", model.MediaImage
	default:
		return "image/jpeg", model.MediaImage
	}
}

func (m Model) viewUploading() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("🎨 Create a Drip") + "\n")
	b.WriteString(SubtitleStyle.Render("Share something surprising with your feed.") + "\n\n")

	labels := []string{"Fact", "Caption", "Media file", "Media type"}
	for i, label := range labels {
		marker := "  "
		if int(m.uploadFocus) == i {
			marker = "> "
		}
		b.WriteString(marker + label + "\n")
		switch uploadFocus(i) {
		case uploadFact:
			b.WriteString(m.factArea.View() + "\n")
		case uploadCaption:
			b.WriteString(m.captionArea.View() + "\n")
		case uploadMedia:
			b.WriteString(m.mediaInput.View() + "\n")
		case uploadKind:
			kind := "image"
			if m.uploadVideo {
				kind = "video"
			}
			b.WriteString("  " + SelectedItem.Render(kind) + "\n")
		}
		b.WriteString("\n")
	}

	if m.uploadErr != "" {
		b.WriteString(ErrorStyle.Render(m.uploadErr) + "\n")
	}

	b.WriteString(HelpStyle.Render("[tab] next field  [ctrl+s] post  [esc] cancel"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

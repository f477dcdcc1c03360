package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepanshuvermaa/dripfeed/internal/genai"
	"github.com/deepanshuvermaa/dripfeed/internal/geo"
	"github.com/deepanshuvermaa/dripfeed/internal/model"
	"github.com/deepanshuvermaa/dripfeed/internal/profile"
	"github.com/deepanshuvermaa/dripfeed/internal/queue"
	"github.com/deepanshuvermaa/dripfeed/internal/store"
)

// stubSource is a fixed-output content source for UI tests.
type stubSource struct{}

func (stubSource) Name() string    { return "stub" }
func (stubSource) Available() bool { return true }
func (stubSource) Generate(ctx context.Context, prefs []string, region string) (model.Drip, error) {
	return model.Drip{ID: model.NewDripID(), Fact: "f", FunnyCaption: "c", MediaURL: "data:x", MediaKind: model.MediaImage}, nil
}
func (stubSource) Explain(ctx context.Context, fact string, mode genai.ExplainMode) (string, error) {
	return "because science", nil
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	src := stubSource{}
	ctrl := queue.New(src, st, []model.Drip{{ID: "sample-1", Fact: "s"}})
	tr := profile.NewTracker(st)
	return New(ctrl, src, st, tr, geo.NewResolver())
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStartupWithoutPreferencesShowsWelcome(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(startupMsg{Region: "India", Profile: model.DefaultProfile()})
	m = next.(Model)

	if m.mode != model.ModeWelcome {
		t.Errorf("mode = %v, want welcome", m.mode)
	}
}

func TestWelcomeAnyKeyOpensPreferences(t *testing.T) {
	m := newTestModel(t)
	m.mode = model.ModeWelcome

	next, _ := m.Update(key("x"))
	m = next.(Model)

	if m.mode != model.ModePreferences {
		t.Errorf("mode = %v, want preferences", m.mode)
	}
}

func TestPreferencesSubmitValidation(t *testing.T) {
	m := newTestModel(t)
	m.mode = model.ModePreferences

	// No topics selected.
	m.nameInput.SetValue("drippy")
	next, _ := m.submitPreferences()
	m = next.(Model)
	if m.mode != model.ModePreferences || m.prefsErr == "" {
		t.Errorf("submit with no topics accepted: mode=%v err=%q", m.mode, m.prefsErr)
	}

	// Short username.
	m.prefsSel["History"] = true
	m.nameInput.SetValue("ab")
	next, _ = m.submitPreferences()
	m = next.(Model)
	if m.mode != model.ModePreferences || m.prefsErr == "" {
		t.Errorf("submit with short username accepted: mode=%v err=%q", m.mode, m.prefsErr)
	}

	// Valid submission starts the load.
	m.nameInput.SetValue("drippy")
	next, cmd := m.submitPreferences()
	m = next.(Model)
	if m.mode != model.ModeLoading {
		t.Errorf("mode = %v, want loading", m.mode)
	}
	if cmd == nil {
		t.Error("valid submit returned no load command")
	}
	if m.user.Username != "drippy" {
		t.Errorf("username = %q", m.user.Username)
	}
	if got := m.store.Preferences(); len(got) != 1 || got[0] != "History" {
		t.Errorf("saved preferences = %v", got)
	}
}

func TestInitialLoadOutcomeDrivesMode(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(initialLoadedMsg{Outcome: queue.LoadOutcome{Mode: model.ModeContent, Warning: queue.WarnSamples}})
	m = next.(Model)
	if m.mode != model.ModeContent || m.warning != queue.WarnSamples {
		t.Errorf("mode=%v warning=%q", m.mode, m.warning)
	}

	next, _ = m.Update(initialLoadedMsg{Outcome: queue.LoadOutcome{Mode: model.ModeError, Err: queue.ErrNoContent}})
	m = next.(Model)
	if m.mode != model.ModeError || m.errText == "" {
		t.Errorf("mode=%v err=%q", m.mode, m.errText)
	}

	// A stale outcome changes nothing.
	next, _ = m.Update(initialLoadedMsg{Outcome: queue.LoadOutcome{Stale: true}})
	m = next.(Model)
	if m.mode != model.ModeError {
		t.Errorf("stale outcome changed mode to %v", m.mode)
	}
}

func TestAdvanceSettleIncrementsViewed(t *testing.T) {
	m := newTestModel(t)
	m.mode = model.ModeContent
	m.prefs = []string{"History"}
	m.queue.LoadInitial(context.Background(), m.prefs, "India")

	before := m.queue.Len()
	next, cmd := m.Update(key("n"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("advance produced no settle command")
	}
	if !m.queue.Transitioning() {
		t.Fatal("advance did not begin a transition")
	}

	next, _ = m.Update(advanceSettledMsg{})
	m = next.(Model)
	if m.queue.Len() != before-1 {
		t.Errorf("queue length = %d, want %d", m.queue.Len(), before-1)
	}
	if m.user.DripsViewed != 1 {
		t.Errorf("DripsViewed = %d, want 1", m.user.DripsViewed)
	}
	if m.toast == "" {
		t.Error("first view should raise an achievement toast")
	}
}

func TestToggleFavoriteResync(t *testing.T) {
	m := newTestModel(t)
	m.mode = model.ModeContent
	m.queue.SubmitUserItem("fact", "cap", "data:x", model.MediaImage, "drippy")

	next, _ := m.Update(key("f"))
	m = next.(Model)
	if len(m.favorites) != 1 || m.user.FavoritesSaved != 1 {
		t.Errorf("favorites=%d counter=%d", len(m.favorites), m.user.FavoritesSaved)
	}

	next, _ = m.Update(key("f"))
	m = next.(Model)
	if len(m.favorites) != 0 || m.user.FavoritesSaved != 0 {
		t.Errorf("after untoggle: favorites=%d counter=%d", len(m.favorites), m.user.FavoritesSaved)
	}
}

func TestCommentSubmit(t *testing.T) {
	m := newTestModel(t)
	m.mode = model.ModeContent
	m.user.Username = "drippy"
	m.queue.SubmitUserItem("fact", "cap", "data:x", model.MediaImage, "drippy")

	next, _ := m.Update(key("c"))
	m = next.(Model)
	if !m.commentsOpen {
		t.Fatal("comments overlay not opened")
	}

	m.commentInput.SetValue("nice one")
	next, _ = m.Update(key("enter"))
	m = next.(Model)

	head, _ := m.queue.Head()
	list := m.comments[head.ID]
	if len(list) != 1 || list[0].Text != "nice one" || list[0].Author != "drippy" {
		t.Fatalf("comments = %v", list)
	}
	if m.user.CommentsMade != 1 {
		t.Errorf("CommentsMade = %d, want 1", m.user.CommentsMade)
	}
	if got := m.store.Comments()[head.ID]; len(got) != 1 {
		t.Errorf("persisted comments = %v", got)
	}
}

func TestUploadValidationKeepsForm(t *testing.T) {
	m := newTestModel(t)
	m.mode = model.ModeUploading
	m.factArea.SetValue("a fact")

	next, _ := m.submitUpload()
	m = next.(Model)
	if m.mode != model.ModeUploading || m.uploadErr == "" {
		t.Errorf("incomplete upload accepted: mode=%v err=%q", m.mode, m.uploadErr)
	}
	if m.factArea.Value() != "a fact" {
		t.Error("typed fact was lost on validation failure")
	}
}

func TestToastExpiryGuardsSequence(t *testing.T) {
	m := newTestModel(t)
	m.toast = "old"
	m.toastSeq = 2

	// An expiry from an earlier toast leaves the newer one visible.
	next, _ := m.Update(toastExpiredMsg{Seq: 1})
	m = next.(Model)
	if m.toast == "" {
		t.Error("stale expiry hid a newer toast")
	}

	next, _ = m.Update(toastExpiredMsg{Seq: 2})
	m = next.(Model)
	if m.toast != "" {
		t.Error("matching expiry did not hide the toast")
	}
}

func TestViewsRenderWithoutPanic(t *testing.T) {
	m := newTestModel(t)
	m.width, m.height = 80, 24
	m.queue.SubmitUserItem("fact", "cap", "data:x", model.MediaImage, "drippy")

	for _, mode := range []model.Mode{
		model.ModeWelcome, model.ModePreferences, model.ModeLoading,
		model.ModeContent, model.ModeError, model.ModeProfile,
		model.ModeExplaining, model.ModeUploading,
	} {
		m.mode = mode
		if m.View() == "" {
			t.Errorf("empty view for mode %v", mode)
		}
	}
}

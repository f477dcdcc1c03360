// Package ui is the Bubble Tea presentation layer for Dripfeed.
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepanshuvermaa/dripfeed/internal/genai"
	"github.com/deepanshuvermaa/dripfeed/internal/geo"
	"github.com/deepanshuvermaa/dripfeed/internal/logging"
	"github.com/deepanshuvermaa/dripfeed/internal/model"
	"github.com/deepanshuvermaa/dripfeed/internal/profile"
	"github.com/deepanshuvermaa/dripfeed/internal/queue"
	"github.com/deepanshuvermaa/dripfeed/internal/store"
)

// toastDuration is how long an achievement toast stays visible.
const toastDuration = 4 * time.Second

// prefsFocus names the focusable areas on the preferences screen.
type prefsFocus int

const (
	focusName prefsFocus = iota
	focusTopics
	focusRegion
)

// uploadFocus names the focusable areas on the uploader screen.
type uploadFocus int

const (
	uploadFact uploadFocus = iota
	uploadCaption
	uploadMedia
	uploadKind
)

// Model is the root Bubble Tea model
type Model struct {
	queue   *queue.Controller
	source  genai.Source
	store   *store.Store
	tracker *profile.Tracker
	geo     *geo.Resolver

	mode   model.Mode
	width  int
	height int

	region string
	prefs  []string
	user   model.UserProfile

	favorites []model.Drip
	comments  map[string][]model.Comment

	warning string
	errText string

	refreshing bool

	// Achievement toast. One visible at a time; extras are recorded silently.
	toast    string
	toastSeq int

	// Preferences screen
	prefsSel    map[string]bool
	topicCursor int
	regionIdx   int
	nameInput   textinput.Model
	prefsFocus  prefsFocus
	prefsErr    string

	// Comments overlay on the content screen
	commentsOpen bool
	commentInput textinput.Model

	// Explainer
	explainBusy bool
	explainText string

	// Uploader
	factArea    textarea.Model
	captionArea textarea.Model
	mediaInput  textinput.Model
	uploadVideo bool
	uploadFocus uploadFocus
	uploadErr   string

	// Profile screen
	favCursor   int
	editingName bool
	editInput   textinput.Model

	spin spinner.Model
}

// New creates the root model. The startup command reads saved state and
// detects the region before deciding which screen to show.
func New(ctrl *queue.Controller, src genai.Source, st *store.Store, tr *profile.Tracker, gr *geo.Resolver) Model {
	name := textinput.New()
	name.Placeholder = "Enter your username..."
	name.CharLimit = 20

	comment := textinput.New()
	comment.Placeholder = "Add a comment..."
	comment.CharLimit = 280

	fact := textarea.New()
	fact.Placeholder = "The surprising fact..."
	fact.SetHeight(3)

	caption := textarea.New()
	caption.Placeholder = "The funny caption..."
	caption.SetHeight(2)

	media := textinput.New()
	media.Placeholder = "Path to an image or video file..."

	edit := textinput.New()
	edit.CharLimit = 20

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		queue:        ctrl,
		source:       src,
		store:        st,
		tracker:      tr,
		geo:          gr,
		mode:         model.ModeLoading,
		prefsSel:     map[string]bool{},
		comments:     map[string][]model.Comment{},
		nameInput:    name,
		commentInput: comment,
		factArea:     fact,
		captionArea:  caption,
		mediaInput:   media,
		editInput:    edit,
		spin:         sp,
	}
}

// Init initializes the app
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startup(), m.spin.Tick)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.nameInput.Width = min(40, msg.Width-8)
		m.commentInput.Width = min(50, msg.Width-8)
		m.mediaInput.Width = min(50, msg.Width-8)
		m.factArea.SetWidth(min(60, msg.Width-8))
		m.captionArea.SetWidth(min(60, msg.Width-8))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case startupMsg:
		return m.handleStartup(msg)

	case initialLoadedMsg:
		return m.handleInitialLoaded(msg)

	case advanceSettledMsg:
		return m.handleAdvanceSettled()

	case refillDoneMsg:
		if msg.Added > 0 {
			logging.Debug("queue refilled", "added", msg.Added)
		}
		return m, nil

	case refreshDoneMsg:
		if msg.OK {
			m.warning = ""
		}
		return m, tea.Tick(queue.RefreshSettleDelay, func(time.Time) tea.Msg {
			return refreshSettledMsg{}
		})

	case refreshSettledMsg:
		m.refreshing = false
		return m, nil

	case explainDoneMsg:
		m.explainBusy = false
		m.explainText = msg.Text
		return m, nil

	case toastExpiredMsg:
		if msg.Seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.store.Close()
		return m, tea.Quit
	}

	switch m.mode {
	case model.ModeWelcome:
		return m.updateWelcome(msg)
	case model.ModePreferences:
		return m.updatePreferences(msg)
	case model.ModeContent:
		return m.updateContent(msg)
	case model.ModeError:
		return m.updateError(msg)
	case model.ModeProfile:
		return m.updateProfile(msg)
	case model.ModeExplaining:
		return m.updateExplaining(msg)
	case model.ModeUploading:
		return m.updateUploading(msg)
	}
	return m, nil
}

// View renders the UI
func (m Model) View() string {
	switch m.mode {
	case model.ModeWelcome:
		return m.viewWelcome()
	case model.ModePreferences:
		return m.viewPreferences()
	case model.ModeLoading:
		return m.viewLoading()
	case model.ModeContent:
		return m.viewContent()
	case model.ModeError:
		return m.viewError()
	case model.ModeProfile:
		return m.viewProfile()
	case model.ModeExplaining:
		return m.viewExplaining()
	case model.ModeUploading:
		return m.viewUploading()
	}
	return ""
}

// Commands

func (m Model) startup() tea.Cmd {
	st, gr := m.store, m.geo
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		p := st.Profile()
		region := p.Region
		if region == "" {
			region = gr.Region(ctx)
			p.Region = region
			if err := st.SaveProfile(p); err != nil {
				logging.Warn("region save failed", "error", err)
			}
		}

		return startupMsg{
			Region:  region,
			Prefs:   st.Preferences(),
			Profile: p,
		}
	}
}

func (m Model) handleStartup(msg startupMsg) (tea.Model, tea.Cmd) {
	m.region = msg.Region
	m.prefs = msg.Prefs
	m.user = msg.Profile
	m.favorites = m.store.Favorites()
	m.comments = m.store.Comments()

	// Pre-fill the preferences screen from saved state.
	for _, t := range msg.Prefs {
		m.prefsSel[t] = true
	}
	for i, r := range Regions {
		if r == msg.Region {
			m.regionIdx = i
			break
		}
	}
	if msg.Profile.Username != "" && msg.Profile.Username != model.DefaultProfile().Username {
		m.nameInput.SetValue(msg.Profile.Username)
	}

	if len(m.prefs) == 0 {
		m.mode = model.ModeWelcome
		return m, nil
	}

	m.mode = model.ModeLoading
	return m, m.loadInitial()
}

func (m Model) loadInitial() tea.Cmd {
	ctrl, prefs, region := m.queue, m.prefs, m.region
	return func() tea.Msg {
		outcome := ctrl.LoadInitial(context.Background(), prefs, region)
		return initialLoadedMsg{Outcome: outcome}
	}
}

func (m Model) handleInitialLoaded(msg initialLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Outcome.Stale {
		return m, nil
	}

	m.mode = msg.Outcome.Mode
	m.warning = msg.Outcome.Warning
	m.errText = msg.Outcome.Err

	if m.mode == model.ModeContent {
		return m, m.maybeRefill()
	}
	return m, nil
}

func (m Model) maybeRefill() tea.Cmd {
	if !m.queue.NeedsRefill() {
		return nil
	}
	ctrl, prefs, region := m.queue, m.prefs, m.region
	return func() tea.Msg {
		added := ctrl.Refill(context.Background(), prefs, region)
		return refillDoneMsg{Added: added}
	}
}

func (m Model) handleAdvanceSettled() (tea.Model, tea.Cmd) {
	if _, ok := m.queue.CompleteAdvance(); !ok {
		return m, nil
	}

	var fresh []profile.Achievement
	m.user, fresh = m.tracker.RecordViewed()

	cmds := []tea.Cmd{m.maybeRefill()}
	if cmd := m.showToast(fresh); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// showToast displays the first fresh unlock. Extras were already persisted;
// they appear on the profile screen without a toast.
func (m *Model) showToast(fresh []profile.Achievement) tea.Cmd {
	if len(fresh) == 0 {
		return nil
	}
	a := fresh[0]
	m.toast = fmt.Sprintf("%s Achievement Unlocked: %s", a.Icon, a.Title)
	m.toastSeq++
	seq := m.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{Seq: seq}
	})
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

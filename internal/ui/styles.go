package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorWarning   = lipgloss.Color("214") // Orange
)

// Header style for the top bar.
var Header = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// Card style for the knowledge card frame.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 2)

// CardFact style for the fact text inside the card.
var CardFact = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255"))

// CardCaption style for the funny caption.
var CardCaption = lipgloss.NewStyle().
	Italic(true).
	Foreground(colorHighlight)

// CardMeta style for media and author lines.
var CardMeta = lipgloss.NewStyle().
	Foreground(colorMuted)

// AuthorBadge style for user-generated content attribution.
var AuthorBadge = lipgloss.NewStyle().
	Foreground(colorSuccess).
	Bold(true)

// WarningBanner style for degraded-tier warnings.
var WarningBanner = lipgloss.NewStyle().
	Foreground(colorWarning).
	Padding(0, 1)

// Toast style for the achievement toast.
var Toast = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorSuccess).
	Padding(0, 1)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true).
	Padding(0, 1)

// TitleStyle for screen headings.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	MarginBottom(1)

// SubtitleStyle for secondary headings and hints.
var SubtitleStyle = lipgloss.NewStyle().
	Foreground(colorSecondary)

// SelectedItem style for the currently highlighted list entry.
var SelectedItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// NormalItem style for unselected list entries.
var NormalItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// TopicOn style for a selected topic chip.
var TopicOn = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1).
	MarginRight(1)

// TopicOff style for an unselected topic chip.
var TopicOff = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Background(lipgloss.Color("236")).
	Padding(0, 1).
	MarginRight(1)

// BadgeUnlocked style for earned achievements.
var BadgeUnlocked = lipgloss.NewStyle().
	Foreground(colorSuccess)

// BadgeLocked style for achievements not yet earned.
var BadgeLocked = lipgloss.NewStyle().
	Foreground(colorMuted)

// StatValue style for profile counters.
var StatValue = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)

// HelpStyle for help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// OverlayTitle style for the comments overlay heading.
var OverlayTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)

package ui

import (
	"github.com/deepanshuvermaa/dripfeed/internal/model"
	"github.com/deepanshuvermaa/dripfeed/internal/queue"
)

// Messages for Bubble Tea

// startupMsg carries everything read during startup: saved state plus the
// detected region.
type startupMsg struct {
	Region  string
	Prefs   []string
	Profile model.UserProfile
}

// initialLoadedMsg is sent when the tiered initial load settles.
type initialLoadedMsg struct {
	Outcome queue.LoadOutcome
}

// advanceSettledMsg fires after the advance settle delay; the head pop and
// viewed-counter increment happen when it is handled.
type advanceSettledMsg struct{}

// refillDoneMsg is sent when a background top-up finishes.
type refillDoneMsg struct {
	Added int
}

// refreshDoneMsg is sent when a manual full refresh finishes.
type refreshDoneMsg struct {
	OK bool
}

// refreshSettledMsg clears the refresh indicator after its settle delay.
type refreshSettledMsg struct{}

// explainDoneMsg carries the explanation text (or the canned apology).
type explainDoneMsg struct {
	Text string
}

// toastExpiredMsg hides the achievement toast. Seq guards against an old
// timer hiding a newer toast.
type toastExpiredMsg struct {
	Seq int
}

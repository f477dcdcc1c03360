package profile

import (
	"time"

	"github.com/deepanshuvermaa/dripfeed/internal/logging"
	"github.com/deepanshuvermaa/dripfeed/internal/model"
)

// Recorder is the persistence surface the tracker needs. *store.Store
// satisfies it; tests supply an in-memory fake.
type Recorder interface {
	Profile() model.UserProfile
	SaveProfile(model.UserProfile) error
	UnlockedAchievements() []model.UnlockedAchievement
	SaveUnlockedAchievements([]model.UnlockedAchievement) error
}

// Tracker increments profile counters in response to user actions and
// re-evaluates achievement unlocks after each change. Persistence failures
// are logged and otherwise ignored; the in-memory profile stays correct for
// the session.
type Tracker struct {
	rec Recorder
	now func() time.Time
}

// NewTracker creates a tracker backed by the given store.
func NewTracker(rec Recorder) *Tracker {
	return &Tracker{rec: rec, now: time.Now}
}

// apply mutates the profile, persists it, and records any fresh unlocks.
// Returns the updated profile and the newly unlocked achievements in table
// order (first one is the toast candidate).
func (t *Tracker) apply(mutate func(*model.UserProfile)) (model.UserProfile, []Achievement) {
	p := t.rec.Profile()
	mutate(&p)
	if err := t.rec.SaveProfile(p); err != nil {
		logging.Warn("profile save failed", "error", err)
	}

	unlocked := t.rec.UnlockedAchievements()
	fresh := NewlyUnlocked(p, unlocked)
	if len(fresh) > 0 {
		ts := t.now().UnixMilli()
		for _, a := range fresh {
			unlocked = append(unlocked, model.UnlockedAchievement{AchievementID: a.ID, Timestamp: ts})
		}
		if err := t.rec.SaveUnlockedAchievements(unlocked); err != nil {
			logging.Warn("achievement save failed", "error", err)
		}
	}
	return p, fresh
}

// RecordViewed increments the drips-viewed counter.
func (t *Tracker) RecordViewed() (model.UserProfile, []Achievement) {
	return t.apply(func(p *model.UserProfile) { p.DripsViewed++ })
}

// RecordComment increments the comments-made counter.
func (t *Tracker) RecordComment() (model.UserProfile, []Achievement) {
	return t.apply(func(p *model.UserProfile) { p.CommentsMade++ })
}

// RecordCreated increments the drips-created counter.
func (t *Tracker) RecordCreated() (model.UserProfile, []Achievement) {
	return t.apply(func(p *model.UserProfile) { p.DripsCreated++ })
}

// SyncFavorites resynchronizes the favorites counter to the live favorites
// collection size. Toggling a favorite off and on again therefore does not
// double-count; achievement thresholds are defined against this value.
func (t *Tracker) SyncFavorites(count int) (model.UserProfile, []Achievement) {
	return t.apply(func(p *model.UserProfile) { p.FavoritesSaved = count })
}

// SetIdentity updates username and region without touching counters or
// triggering achievement checks.
func (t *Tracker) SetIdentity(username, region string) model.UserProfile {
	p := t.rec.Profile()
	if username != "" {
		p.Username = username
	}
	if region != "" {
		p.Region = region
	}
	if err := t.rec.SaveProfile(p); err != nil {
		logging.Warn("profile save failed", "error", err)
	}
	return p
}

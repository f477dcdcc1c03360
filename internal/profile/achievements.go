// Package profile tracks user activity counters and achievement unlocks.
package profile

import (
	"github.com/deepanshuvermaa/dripfeed/internal/model"
)

// Counter names one of the profile's activity counters.
type Counter int

const (
	CounterViewed Counter = iota
	CounterFavorites
	CounterComments
	CounterCreated
)

// Achievement is one badge with a monotone threshold over a single counter.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Counter     Counter
	Threshold   int
}

// Achievements is the fixed badge table. Evaluation order is table order;
// when several unlock at once the caller shows the first and records the rest.
var Achievements = []Achievement{
	{ID: "view_1", Title: "Curious Newbie", Description: "View your first Drip.", Icon: "💧", Counter: CounterViewed, Threshold: 1},
	{ID: "view_10", Title: "Brain Feeder", Description: "View 10 Drips.", Icon: "🧠", Counter: CounterViewed, Threshold: 10},
	{ID: "view_50", Title: "Knowledge Junkie", Description: "View 50 Drips.", Icon: "📚", Counter: CounterViewed, Threshold: 50},
	{ID: "view_100", Title: "Sage in Training", Description: "View 100 Drips.", Icon: "🦉", Counter: CounterViewed, Threshold: 100},
	{ID: "fav_1", Title: "First Find", Description: "Favorite your first Drip.", Icon: "❤️", Counter: CounterFavorites, Threshold: 1},
	{ID: "fav_10", Title: "Collector", Description: "Favorite 10 Drips.", Icon: "💎", Counter: CounterFavorites, Threshold: 10},
	{ID: "fav_25", Title: "Curator", Description: "Favorite 25 Drips.", Icon: "🖼️", Counter: CounterFavorites, Threshold: 25},
	{ID: "comment_1", Title: "First Words", Description: "Write your first comment.", Icon: "💬", Counter: CounterComments, Threshold: 1},
	{ID: "comment_10", Title: "Social Butterfly", Description: "Write 10 comments.", Icon: "🦋", Counter: CounterComments, Threshold: 10},
	{ID: "create_1", Title: "Creator", Description: "Create your first Drip.", Icon: "🎨", Counter: CounterCreated, Threshold: 1},
	{ID: "create_5", Title: "Meme Lord", Description: "Create 5 Drips.", Icon: "👑", Counter: CounterCreated, Threshold: 5},
}

// ByID returns the achievement with the given ID, if present.
func ByID(id string) (Achievement, bool) {
	for _, a := range Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

func counterValue(p model.UserProfile, c Counter) int {
	switch c {
	case CounterViewed:
		return p.DripsViewed
	case CounterFavorites:
		return p.FavoritesSaved
	case CounterComments:
		return p.CommentsMade
	case CounterCreated:
		return p.DripsCreated
	default:
		return 0
	}
}

// NewlyUnlocked evaluates the badge table against a profile snapshot and
// returns, in table order, the achievements whose threshold is now met and
// whose ID is not already in the unlocked set. Already-unlocked IDs are never
// returned again.
func NewlyUnlocked(p model.UserProfile, unlocked []model.UnlockedAchievement) []Achievement {
	have := make(map[string]struct{}, len(unlocked))
	for _, u := range unlocked {
		have[u.AchievementID] = struct{}{}
	}

	var fresh []Achievement
	for _, a := range Achievements {
		if _, done := have[a.ID]; done {
			continue
		}
		if counterValue(p, a.Counter) >= a.Threshold {
			fresh = append(fresh, a)
		}
	}
	return fresh
}

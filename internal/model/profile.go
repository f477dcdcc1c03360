package model

// UserProfile is the single persistent user record. The four counters only
// ever grow, except FavoritesSaved which is resynchronized to the live
// favorites count on every toggle.
type UserProfile struct {
	Username       string `json:"username"`
	Region         string `json:"region"`
	DripsViewed    int    `json:"dripsViewed"`
	FavoritesSaved int    `json:"favoritesSaved"`
	CommentsMade   int    `json:"commentsMade"`
	DripsCreated   int    `json:"dripsCreated"`
}

// DefaultRegion is used whenever region detection fails or nothing is saved.
const DefaultRegion = "United States"

// DefaultProfile returns the profile used before the user has set anything up.
func DefaultProfile() UserProfile {
	return UserProfile{
		Username: "CuriousMind",
		Region:   DefaultRegion,
	}
}

// Comment is a single user comment attached to a drip.
type Comment struct {
	ID        string `json:"id"`
	ContentID string `json:"contentId"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// UnlockedAchievement records that an achievement was earned and when.
type UnlockedAchievement struct {
	AchievementID string `json:"achievementId"`
	Timestamp     int64  `json:"timestamp"`
}

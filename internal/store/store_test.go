package store

import (
	"testing"

	"github.com/deepanshuvermaa/dripfeed/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpen(t *testing.T) {
	st := openTestStore(t)

	var name string
	err := st.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='kv'").Scan(&name)
	if err != nil {
		t.Fatalf("kv table not created: %v", err)
	}
}

func TestDefaultsOnMissingKeys(t *testing.T) {
	st := openTestStore(t)

	if got := st.Preferences(); len(got) != 0 {
		t.Errorf("Preferences = %v, want empty", got)
	}
	if got := st.Favorites(); len(got) != 0 {
		t.Errorf("Favorites = %v, want empty", got)
	}
	if got := st.FallbackDrips(); len(got) != 0 {
		t.Errorf("FallbackDrips = %v, want empty", got)
	}
	if got := st.Comments(); got == nil || len(got) != 0 {
		t.Errorf("Comments = %v, want empty map", got)
	}
	if got := st.UnlockedAchievements(); len(got) != 0 {
		t.Errorf("UnlockedAchievements = %v, want empty", got)
	}

	p := st.Profile()
	if p.Username != "CuriousMind" || p.Region != model.DefaultRegion {
		t.Errorf("default profile = %+v", p)
	}
	if p.DripsViewed != 0 || p.FavoritesSaved != 0 || p.CommentsMade != 0 || p.DripsCreated != 0 {
		t.Errorf("default profile counters not zero: %+v", p)
	}
}

func TestDefaultsOnCorruptValue(t *testing.T) {
	st := openTestStore(t)

	for _, key := range []string{"preferences", "favorites", "fallbackDrips", "profile", "comments", "unlockedAchievements"} {
		if _, err := st.db.Exec("INSERT INTO kv (key, value) VALUES (?, ?)", key, "{not json"); err != nil {
			t.Fatalf("seed corrupt %s: %v", key, err)
		}
	}

	if got := st.Preferences(); len(got) != 0 {
		t.Errorf("Preferences on corrupt = %v, want empty", got)
	}
	if got := st.FallbackDrips(); len(got) != 0 {
		t.Errorf("FallbackDrips on corrupt = %v, want empty", got)
	}
	if p := st.Profile(); p.Username != "CuriousMind" {
		t.Errorf("Profile on corrupt = %+v, want default", p)
	}
	if got := st.Comments(); len(got) != 0 {
		t.Errorf("Comments on corrupt = %v, want empty map", got)
	}
}

func TestPreferencesRoundtrip(t *testing.T) {
	st := openTestStore(t)

	if err := st.SavePreferences([]string{"Science", "History"}); err != nil {
		t.Fatalf("SavePreferences failed: %v", err)
	}
	got := st.Preferences()
	if len(got) != 2 || got[0] != "Science" || got[1] != "History" {
		t.Errorf("Preferences = %v", got)
	}
}

func TestSaveFallbackDripsDedupAndCap(t *testing.T) {
	st := openTestStore(t)

	a := model.Drip{ID: "a", Fact: "fact a"}
	b := model.Drip{ID: "b", Fact: "fact b"}
	c := model.Drip{ID: "c", Fact: "fact c"}

	if err := st.SaveFallbackDrips([]model.Drip{a, b}); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := st.SaveFallbackDrips([]model.Drip{b, c}); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	got := st.FallbackDrips()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3 (%v)", len(got), got)
	}
	// Most recent save wins position; b appears exactly once.
	if got[0].ID != "b" || got[1].ID != "c" || got[2].ID != "a" {
		t.Errorf("order = [%s %s %s], want [b c a]", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestSaveFallbackDripsTruncates(t *testing.T) {
	st := openTestStore(t)

	var batch []model.Drip
	for i := 0; i < FallbackCap+5; i++ {
		batch = append(batch, model.Drip{ID: string(rune('a' + i))})
	}
	if err := st.SaveFallbackDrips(batch); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got := st.FallbackDrips()
	if len(got) != FallbackCap {
		t.Errorf("len = %d, want %d", len(got), FallbackCap)
	}
	if got[0].ID != "a" {
		t.Errorf("head = %s, want a", got[0].ID)
	}
}

func TestProfileRoundtrip(t *testing.T) {
	st := openTestStore(t)

	p := model.UserProfile{Username: "drippy", Region: "India", DripsViewed: 7, FavoritesSaved: 2}
	if err := st.SaveProfile(p); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	if got := st.Profile(); got != p {
		t.Errorf("Profile = %+v, want %+v", got, p)
	}
}

func TestCommentsRoundtrip(t *testing.T) {
	st := openTestStore(t)

	c := map[string][]model.Comment{
		"drip-1": {{ID: "1", ContentID: "drip-1", Author: "drippy", Text: "wild", Timestamp: 42}},
	}
	if err := st.SaveComments(c); err != nil {
		t.Fatalf("SaveComments failed: %v", err)
	}
	got := st.Comments()
	if len(got["drip-1"]) != 1 || got["drip-1"][0].Text != "wild" {
		t.Errorf("Comments = %v", got)
	}
}

package profile

import (
	"testing"

	"github.com/deepanshuvermaa/dripfeed/internal/model"
)

// fakeRecorder is an in-memory Recorder for tracker tests.
type fakeRecorder struct {
	profile  model.UserProfile
	unlocked []model.UnlockedAchievement
	saveErr  error
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{profile: model.DefaultProfile()}
}

func (f *fakeRecorder) Profile() model.UserProfile            { return f.profile }
func (f *fakeRecorder) SaveProfile(p model.UserProfile) error { f.profile = p; return f.saveErr }
func (f *fakeRecorder) UnlockedAchievements() []model.UnlockedAchievement {
	return f.unlocked
}
func (f *fakeRecorder) SaveUnlockedAchievements(u []model.UnlockedAchievement) error {
	f.unlocked = u
	return f.saveErr
}

func TestRecordViewedUnlocksFirstView(t *testing.T) {
	rec := newFakeRecorder()
	tr := NewTracker(rec)

	p, fresh := tr.RecordViewed()
	if p.DripsViewed != 1 {
		t.Errorf("DripsViewed = %d, want 1", p.DripsViewed)
	}
	if len(fresh) != 1 || fresh[0].ID != "view_1" {
		t.Fatalf("fresh = %v, want exactly view_1", fresh)
	}
	if len(rec.unlocked) != 1 || rec.unlocked[0].AchievementID != "view_1" {
		t.Errorf("unlock not persisted: %v", rec.unlocked)
	}
}

func TestAlreadyUnlockedNeverReturnsAgain(t *testing.T) {
	rec := newFakeRecorder()
	tr := NewTracker(rec)

	if _, fresh := tr.RecordViewed(); len(fresh) != 1 {
		t.Fatalf("first view should unlock view_1, got %v", fresh)
	}
	for i := 0; i < 20; i++ {
		_, fresh := tr.RecordViewed()
		for _, a := range fresh {
			if a.ID == "view_1" {
				t.Fatal("view_1 re-unlocked")
			}
		}
	}
	if rec.profile.DripsViewed != 21 {
		t.Errorf("DripsViewed = %d, want 21", rec.profile.DripsViewed)
	}

	// The 10-view badge unlocked somewhere along the way, exactly once.
	count := 0
	for _, u := range rec.unlocked {
		if u.AchievementID == "view_10" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("view_10 unlock count = %d, want 1", count)
	}
}

func TestSimultaneousUnlocksTableOrder(t *testing.T) {
	rec := newFakeRecorder()
	// Nothing unlocked yet, so the 50th view satisfies view_1/10/50 together.
	rec.profile.DripsViewed = 49
	tr := NewTracker(rec)

	_, fresh := tr.RecordViewed()
	if len(fresh) != 3 {
		t.Fatalf("fresh = %v, want 3 unlocks", fresh)
	}
	if fresh[0].ID != "view_1" || fresh[1].ID != "view_10" || fresh[2].ID != "view_50" {
		t.Errorf("unlock order = [%s %s %s], want table order", fresh[0].ID, fresh[1].ID, fresh[2].ID)
	}
}

func TestSyncFavoritesResyncSemantics(t *testing.T) {
	rec := newFakeRecorder()
	tr := NewTracker(rec)

	p, fresh := tr.SyncFavorites(1)
	if p.FavoritesSaved != 1 {
		t.Errorf("FavoritesSaved = %d, want 1", p.FavoritesSaved)
	}
	if len(fresh) != 1 || fresh[0].ID != "fav_1" {
		t.Fatalf("fresh = %v, want fav_1", fresh)
	}

	// Remove the favorite: counter follows the collection down.
	p, fresh = tr.SyncFavorites(0)
	if p.FavoritesSaved != 0 {
		t.Errorf("FavoritesSaved after removal = %d, want 0", p.FavoritesSaved)
	}
	if len(fresh) != 0 {
		t.Errorf("removal unlocked %v", fresh)
	}

	// Re-adding the same favorite does not re-unlock fav_1.
	_, fresh = tr.SyncFavorites(1)
	if len(fresh) != 0 {
		t.Errorf("re-add unlocked %v, want nothing", fresh)
	}
}

func TestRecordCommentAndCreated(t *testing.T) {
	rec := newFakeRecorder()
	tr := NewTracker(rec)

	if _, fresh := tr.RecordComment(); len(fresh) != 1 || fresh[0].ID != "comment_1" {
		t.Errorf("comment unlock = %v, want comment_1", fresh)
	}
	if _, fresh := tr.RecordCreated(); len(fresh) != 1 || fresh[0].ID != "create_1" {
		t.Errorf("create unlock = %v, want create_1", fresh)
	}
}

func TestSetIdentityDoesNotTouchCounters(t *testing.T) {
	rec := newFakeRecorder()
	rec.profile.DripsViewed = 5
	tr := NewTracker(rec)

	p := tr.SetIdentity("drippy", "India")
	if p.Username != "drippy" || p.Region != "India" {
		t.Errorf("identity = %q/%q", p.Username, p.Region)
	}
	if p.DripsViewed != 5 {
		t.Errorf("DripsViewed = %d, want 5", p.DripsViewed)
	}
	if len(rec.unlocked) != 0 {
		t.Errorf("identity change unlocked %v", rec.unlocked)
	}
}

func TestByID(t *testing.T) {
	a, ok := ByID("view_1")
	if !ok || a.Title != "Curious Newbie" {
		t.Errorf("ByID(view_1) = %+v, %v", a, ok)
	}
	if _, ok := ByID("nope"); ok {
		t.Error("ByID(nope) should not be found")
	}
}

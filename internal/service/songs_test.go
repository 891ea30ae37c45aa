package service_test

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"example.com/musicbox/internal/apperr"
	"example.com/musicbox/internal/memstore"
	"example.com/musicbox/internal/models"
	"example.com/musicbox/internal/query"
	"example.com/musicbox/internal/service"
)

func newSongFixture(t *testing.T) (*service.SongService, *memstore.Store, models.User, models.User) {
	t.Helper()
	store := memstore.New()
	u1 := store.AddUser(models.User{Username: "alice", Email: "alice@example.com"})
	u2 := store.AddUser(models.User{Username: "bob", Email: "bob@example.com"})
	svc := service.NewSongService(store.Songs(), log.New(io.Discard))
	return svc, store, u1, u2
}

func createSong(t *testing.T, svc *service.SongService, u models.User, title, artist string) models.SongView {
	t.Helper()
	song, err := svc.Create(context.Background(), &u, models.SongInput{
		Title: title, Artist: artist, AudioFile: "songs/x/" + title + ".mp3",
	})
	if err != nil {
		t.Fatalf("creating song: %v", err)
	}
	return song
}

func TestCreate_SetsUploaderAndDefaults(t *testing.T) {
	svc, _, u1, _ := newSongFixture(t)

	song := createSong(t, svc, u1, "A", "B")

	if song.UploaderID == nil || *song.UploaderID != u1.ID {
		t.Errorf("uploader should be the requester, got %v", song.UploaderID)
	}
	if song.UploaderUsername != "alice" {
		t.Errorf("expected uploader_username alice, got %q", song.UploaderUsername)
	}
	if song.LikeCount != 0 || song.DislikeCount != 0 || song.IsLiked || song.IsDisliked {
		t.Error("fresh song should carry zero reaction state")
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _, u1, _ := newSongFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   models.SongInput
	}{
		{"missing title", models.SongInput{Artist: "B", AudioFile: "f.mp3"}},
		{"blank artist", models.SongInput{Title: "A", Artist: "   ", AudioFile: "f.mp3"}},
		{"missing audio file", models.SongInput{Title: "A", Artist: "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, &u1, tt.in)
			if apperr.Status(err) != 400 {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}

	if _, err := svc.Create(ctx, nil, models.SongInput{Title: "A", Artist: "B", AudioFile: "f.mp3"}); apperr.Status(err) != 401 {
		t.Errorf("anonymous create should be unauthorized, got %v", err)
	}
}

func TestLike_ToggleIsItsOwnInverse(t *testing.T) {
	svc, _, u1, u2 := newSongFixture(t)
	ctx := context.Background()
	song := createSong(t, svc, u1, "A", "B")

	status, err := svc.Like(ctx, &u2, song.ID)
	if err != nil || status != models.StatusLiked {
		t.Fatalf("first like: status %q, err %v", status, err)
	}
	status, err = svc.Like(ctx, &u2, song.ID)
	if err != nil || status != models.StatusLikeRemoved {
		t.Fatalf("second like: status %q, err %v", status, err)
	}

	view, err := svc.Get(ctx, &u2, song.ID)
	if err != nil {
		t.Fatal(err)
	}
	if view.IsLiked || view.IsDisliked || view.LikeCount != 0 || view.DislikeCount != 0 {
		t.Errorf("after double like the user should be in neither set: %+v", view)
	}
}

func TestDislike_ClearsOppositeSet(t *testing.T) {
	svc, _, u1, u2 := newSongFixture(t)
	ctx := context.Background()
	song := createSong(t, svc, u1, "A", "B")

	if _, err := svc.Like(ctx, &u2, song.ID); err != nil {
		t.Fatal(err)
	}
	status, err := svc.Dislike(ctx, &u2, song.ID)
	if err != nil || status != models.StatusDisliked {
		t.Fatalf("dislike after like: status %q, err %v", status, err)
	}

	view, _ := svc.Get(ctx, &u2, song.ID)
	if view.LikeCount != 0 || view.DislikeCount != 1 {
		t.Errorf("expected like_count=0 dislike_count=1, got %d/%d", view.LikeCount, view.DislikeCount)
	}
	if view.IsLiked || !view.IsDisliked {
		t.Errorf("viewer state wrong: is_liked=%v is_disliked=%v", view.IsLiked, view.IsDisliked)
	}
}

func TestReact_UnknownSongIsNotFound(t *testing.T) {
	svc, _, _, u2 := newSongFixture(t)
	if _, err := svc.Like(context.Background(), &u2, 999); apperr.Status(err) != 404 {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestLiked_ReturnsOnlyTheRequestersSet(t *testing.T) {
	svc, _, u1, u2 := newSongFixture(t)
	ctx := context.Background()
	s1 := createSong(t, svc, u1, "A", "B")
	s2 := createSong(t, svc, u1, "C", "D")

	if _, err := svc.Like(ctx, &u2, s1.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Like(ctx, &u1, s2.ID); err != nil {
		t.Fatal(err)
	}

	liked, err := svc.Liked(ctx, &u2)
	if err != nil {
		t.Fatal(err)
	}
	if len(liked) != 1 || liked[0].ID != s1.ID {
		t.Errorf("expected exactly song %d, got %+v", s1.ID, liked)
	}
	if !liked[0].IsLiked {
		t.Error("liked listing should report is_liked=true")
	}
}

func TestUpdateDelete_OwnershipEnforced(t *testing.T) {
	svc, _, u1, u2 := newSongFixture(t)
	ctx := context.Background()
	song := createSong(t, svc, u1, "A", "B")

	newTitle := "A2"
	if _, err := svc.Update(ctx, &u2, song.ID, models.SongUpdate{Title: &newTitle}); apperr.Status(err) != 403 {
		t.Errorf("non-uploader update should be forbidden, got %v", err)
	}
	if err := svc.Delete(ctx, &u2, song.ID); apperr.Status(err) != 403 {
		t.Errorf("non-uploader delete should be forbidden, got %v", err)
	}

	updated, err := svc.Update(ctx, &u1, song.ID, models.SongUpdate{Title: &newTitle})
	if err != nil || updated.Title != "A2" {
		t.Errorf("uploader update failed: %+v, %v", updated, err)
	}
	if err := svc.Delete(ctx, &u1, song.ID); err != nil {
		t.Errorf("uploader delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, &u1, song.ID); apperr.Status(err) != 404 {
		t.Errorf("deleted song should be gone, got %v", err)
	}
}

func TestList_SearchProperty(t *testing.T) {
	svc, _, u1, _ := newSongFixture(t)
	ctx := context.Background()

	rock1 := createSong(t, svc, u1, "Rock You", "Someone")
	rock2, err := svc.Create(ctx, &u1, models.SongInput{
		Title: "Quiet", Artist: "The Rockets", AudioFile: "f.mp3",
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, &u1, models.SongInput{
		Title: "Silence", Artist: "Nobody", AudioFile: "g.mp3",
	}); err != nil {
		t.Fatal(err)
	}

	got, err := svc.List(ctx, &u1, query.SongListParams{Search: "rock"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != rock1.ID || got[1].ID != rock2.ID {
		t.Errorf("search=rock should return exactly the two matches in id order, got %+v", got)
	}
}

func TestScenario_CreateLikeDislike(t *testing.T) {
	svc, _, u1, u2 := newSongFixture(t)
	ctx := context.Background()

	song := createSong(t, svc, u1, "A", "B")
	if song.UploaderID == nil || *song.UploaderID != u1.ID || song.LikeCount != 0 {
		t.Fatalf("fresh song state wrong: %+v", song)
	}

	if _, err := svc.Like(ctx, &u2, song.ID); err != nil {
		t.Fatal(err)
	}
	view, _ := svc.Get(ctx, &u2, song.ID)
	if view.LikeCount != 1 || !view.IsLiked {
		t.Errorf("after like: %+v", view)
	}

	if _, err := svc.Dislike(ctx, &u2, song.ID); err != nil {
		t.Fatal(err)
	}
	view, _ = svc.Get(ctx, &u2, song.ID)
	if view.LikeCount != 0 || view.DislikeCount != 1 {
		t.Errorf("after dislike: %+v", view)
	}
}

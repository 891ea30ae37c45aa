package service

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"example.com/musicbox/internal/apperr"
	"example.com/musicbox/internal/models"
	"example.com/musicbox/internal/query"
)

type SongService struct {
	store SongStore
	log   *log.Logger
}

func NewSongService(store SongStore, logger *log.Logger) *SongService {
	return &SongService{store: store, log: logger}
}

// List returns the songs visible under the given filters. Songs are
// public, so the viewer only influences the uploader=me filter and the
// viewer-relative like flags.
func (s *SongService) List(ctx context.Context, viewer *models.User, p query.SongListParams) ([]models.SongView, error) {
	return s.store.List(ctx, p.Predicate(viewerID(viewer)), viewerID(viewer))
}

func (s *SongService) Get(ctx context.Context, viewer *models.User, id int64) (models.SongView, error) {
	return s.store.Get(ctx, id, viewerID(viewer))
}

// Create persists a new song with the requester as uploader.
func (s *SongService) Create(ctx context.Context, requester *models.User, in models.SongInput) (models.SongView, error) {
	if err := RequireUser(requester); err != nil {
		return models.SongView{}, err
	}
	if err := validateSongFields(in.Title, in.Artist, in.AudioFile, in.Year); err != nil {
		return models.SongView{}, err
	}
	song := models.Song{
		Title:      strings.TrimSpace(in.Title),
		Artist:     strings.TrimSpace(in.Artist),
		Album:      in.Album,
		Genre:      in.Genre,
		Year:       in.Year,
		Duration:   in.Duration,
		AudioFile:  in.AudioFile,
		IsFamous:   in.IsFamous,
		UploaderID: &requester.ID,
	}
	if in.CoverImage != "" {
		song.CoverImage = &in.CoverImage
	}
	if err := s.store.Create(ctx, &song); err != nil {
		return models.SongView{}, err
	}
	s.log.Info("song created", "id", song.ID, "uploader", requester.ID)
	return s.store.Get(ctx, song.ID, requester.ID)
}

// Update applies a partial edit; only the uploader may write.
func (s *SongService) Update(ctx context.Context, requester *models.User, id int64, in models.SongUpdate) (models.SongView, error) {
	song, err := s.store.Fetch(ctx, id)
	if err != nil {
		return models.SongView{}, err
	}
	if err := CanWriteSong(requester, song); err != nil {
		return models.SongView{}, err
	}
	applyString(&song.Title, in.Title)
	applyString(&song.Artist, in.Artist)
	applyString(&song.Album, in.Album)
	applyString(&song.Genre, in.Genre)
	if in.Year != nil {
		song.Year = in.Year
	}
	if in.Duration != nil {
		song.Duration = in.Duration
	}
	if in.AudioFile != nil {
		song.AudioFile = *in.AudioFile
	}
	if in.CoverImage != nil {
		song.CoverImage = in.CoverImage
	}
	if in.IsFamous != nil {
		song.IsFamous = *in.IsFamous
	}
	if err := validateSongFields(song.Title, song.Artist, song.AudioFile, song.Year); err != nil {
		return models.SongView{}, err
	}
	if err := s.store.Update(ctx, &song); err != nil {
		return models.SongView{}, err
	}
	return s.store.Get(ctx, id, requester.ID)
}

// Delete removes a song; membership links and reaction rows cascade away
// with it.
func (s *SongService) Delete(ctx context.Context, requester *models.User, id int64) error {
	song, err := s.store.Fetch(ctx, id)
	if err != nil {
		return err
	}
	if err := CanWriteSong(requester, song); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("song deleted", "id", id, "uploader", requester.ID)
	return nil
}

// Like toggles the requester's membership in the song's like set,
// clearing any standing dislike. The returned status is "liked" or
// "like removed".
func (s *SongService) Like(ctx context.Context, requester *models.User, id int64) (string, error) {
	return s.react(ctx, requester, id, models.ReactionLike)
}

// Dislike is the symmetric toggle on the dislike set.
func (s *SongService) Dislike(ctx context.Context, requester *models.User, id int64) (string, error) {
	return s.react(ctx, requester, id, models.ReactionDislike)
}

func (s *SongService) react(ctx context.Context, requester *models.User, id int64, r models.Reaction) (string, error) {
	if err := RequireUser(requester); err != nil {
		return "", err
	}
	if _, err := s.store.Fetch(ctx, id); err != nil {
		return "", err
	}
	return s.store.ToggleReaction(ctx, id, requester.ID, r)
}

// Liked returns the songs in the requester's like set.
func (s *SongService) Liked(ctx context.Context, requester *models.User) ([]models.SongView, error) {
	if err := RequireUser(requester); err != nil {
		return nil, err
	}
	return s.store.ListLiked(ctx, requester.ID)
}

func validateSongFields(title, artist, audioFile string, year *int) error {
	if strings.TrimSpace(title) == "" {
		return apperr.Validation("title is required")
	}
	if strings.TrimSpace(artist) == "" {
		return apperr.Validation("artist is required")
	}
	if strings.TrimSpace(audioFile) == "" {
		return apperr.Validation("audio_file is required")
	}
	if year != nil && (*year < 0 || *year > 9999) {
		return apperr.Validation("year is out of range")
	}
	return nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func viewerID(u *models.User) int64 {
	if u == nil {
		return 0
	}
	return u.ID
}

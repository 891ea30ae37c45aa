package service

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"example.com/musicbox/internal/apperr"
	"example.com/musicbox/internal/models"
	"example.com/musicbox/internal/query"
)

type PlaylistService struct {
	store PlaylistStore
	songs SongStore
	log   *log.Logger
}

func NewPlaylistService(store PlaylistStore, songs SongStore, logger *log.Logger) *PlaylistService {
	return &PlaylistService{store: store, songs: songs, log: logger}
}

// List returns the union of public playlists and the requester's own,
// optionally narrowed by search.
func (s *PlaylistService) List(ctx context.Context, requester *models.User, p query.PlaylistListParams) ([]models.PlaylistView, error) {
	if err := RequireUser(requester); err != nil {
		return nil, err
	}
	return s.store.List(ctx, p.Predicate(requester.ID), requester.ID)
}

// Get fetches one playlist; a private playlist of someone else reads as
// not found.
func (s *PlaylistService) Get(ctx context.Context, requester *models.User, id int64) (models.PlaylistView, error) {
	if err := RequireUser(requester); err != nil {
		return models.PlaylistView{}, err
	}
	pl, err := s.store.Fetch(ctx, id)
	if err != nil {
		return models.PlaylistView{}, err
	}
	if err := CanReadPlaylist(requester, pl); err != nil {
		return models.PlaylistView{}, err
	}
	return s.store.Get(ctx, id, requester.ID)
}

// Create persists a playlist owned by the requester. Initial membership
// may be supplied as song ids; every id must resolve.
func (s *PlaylistService) Create(ctx context.Context, requester *models.User, in models.PlaylistInput) (models.PlaylistView, error) {
	if err := RequireUser(requester); err != nil {
		return models.PlaylistView{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return models.PlaylistView{}, apperr.Validation("name is required")
	}
	songIDs, err := s.resolveSongIDs(ctx, in.SongIDs)
	if err != nil {
		return models.PlaylistView{}, err
	}
	pl := models.Playlist{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		UserID:      requester.ID,
		IsPublic:    true,
	}
	if in.IsPublic != nil {
		pl.IsPublic = *in.IsPublic
	}
	if in.CoverImage != "" {
		pl.CoverImage = &in.CoverImage
	}
	if err := s.store.Create(ctx, &pl); err != nil {
		return models.PlaylistView{}, err
	}
	if len(songIDs) > 0 {
		if err := s.store.ReplaceSongs(ctx, pl.ID, songIDs); err != nil {
			return models.PlaylistView{}, err
		}
	}
	s.log.Info("playlist created", "id", pl.ID, "owner", requester.ID)
	return s.store.Get(ctx, pl.ID, requester.ID)
}

// Update applies a partial edit; a non-nil song_ids replaces the whole
// membership set. Owner only.
func (s *PlaylistService) Update(ctx context.Context, requester *models.User, id int64, in models.PlaylistUpdate) (models.PlaylistView, error) {
	pl, err := s.store.Fetch(ctx, id)
	if err != nil {
		return models.PlaylistView{}, err
	}
	if err := CanWritePlaylist(requester, pl); err != nil {
		return models.PlaylistView{}, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return models.PlaylistView{}, apperr.Validation("name cannot be empty")
		}
		pl.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		pl.Description = *in.Description
	}
	if in.CoverImage != nil {
		pl.CoverImage = in.CoverImage
	}
	if in.IsPublic != nil {
		pl.IsPublic = *in.IsPublic
	}
	if err := s.store.Update(ctx, &pl); err != nil {
		return models.PlaylistView{}, err
	}
	if in.SongIDs != nil {
		songIDs, err := s.resolveSongIDs(ctx, *in.SongIDs)
		if err != nil {
			return models.PlaylistView{}, err
		}
		if err := s.store.ReplaceSongs(ctx, id, songIDs); err != nil {
			return models.PlaylistView{}, err
		}
	}
	return s.store.Get(ctx, id, requester.ID)
}

// Delete removes a playlist; member songs are untouched.
func (s *PlaylistService) Delete(ctx context.Context, requester *models.User, id int64) error {
	pl, err := s.store.Fetch(ctx, id)
	if err != nil {
		return err
	}
	if err := CanWritePlaylist(requester, pl); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("playlist deleted", "id", id, "owner", requester.ID)
	return nil
}

// AddSong links a song into a playlist the requester can read. Adding a
// song that is already a member succeeds without duplicating the link.
func (s *PlaylistService) AddSong(ctx context.Context, requester *models.User, playlistID, songID int64) error {
	pl, err := s.readablePlaylist(ctx, requester, playlistID)
	if err != nil {
		return err
	}
	if _, err := s.songs.Fetch(ctx, songID); err != nil {
		return err
	}
	return s.store.AddSong(ctx, pl.ID, songID)
}

// RemoveSong unlinks a song. An id that resolves to no song at all is not
// found; a real song that simply isn't a member is a silent no-op.
func (s *PlaylistService) RemoveSong(ctx context.Context, requester *models.User, playlistID, songID int64) error {
	pl, err := s.readablePlaylist(ctx, requester, playlistID)
	if err != nil {
		return err
	}
	if _, err := s.songs.Fetch(ctx, songID); err != nil {
		return err
	}
	return s.store.RemoveSong(ctx, pl.ID, songID)
}

func (s *PlaylistService) readablePlaylist(ctx context.Context, requester *models.User, id int64) (models.Playlist, error) {
	if err := RequireUser(requester); err != nil {
		return models.Playlist{}, err
	}
	pl, err := s.store.Fetch(ctx, id)
	if err != nil {
		return models.Playlist{}, err
	}
	if err := CanReadPlaylist(requester, pl); err != nil {
		return models.Playlist{}, err
	}
	return pl, nil
}

func (s *PlaylistService) resolveSongIDs(ctx context.Context, ids []models.ID) ([]int64, error) {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, err := s.songs.Fetch(ctx, id.Int64()); err != nil {
			if apperr.IsNotFound(err) {
				return nil, apperr.Validation("song_ids contains an unknown song")
			}
			return nil, err
		}
		out = append(out, id.Int64())
	}
	return out, nil
}

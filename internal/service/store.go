// Package service implements the resource services: song and playlist
// CRUD, the reaction toggles, and playlist membership actions. Every
// operation begins with an explicit authorization check and talks to
// persistence through the store interfaces below.
package service

import (
	"context"

	"example.com/musicbox/internal/models"
	"example.com/musicbox/internal/query"
)

// SongStore is the persistence surface for songs and their reaction
// sets. View-returning methods take the viewer's id (0 for anonymous) so
// the store can compute the viewer-relative like flags; list results are
// ordered by id ascending.
type SongStore interface {
	List(ctx context.Context, pred query.Predicate, viewerID int64) ([]models.SongView, error)
	ListLiked(ctx context.Context, userID int64) ([]models.SongView, error)
	Get(ctx context.Context, id, viewerID int64) (models.SongView, error)
	Fetch(ctx context.Context, id int64) (models.Song, error)
	Create(ctx context.Context, s *models.Song) error
	Update(ctx context.Context, s *models.Song) error
	Delete(ctx context.Context, id int64) error
	// ToggleReaction flips the (user,song) tri-state atomically: the
	// opposite set is cleared and the named set is toggled in one unit.
	// It returns the resulting status string.
	ToggleReaction(ctx context.Context, songID, userID int64, r models.Reaction) (string, error)
}

// PlaylistStore is the persistence surface for playlists and their
// membership links. AddSong and RemoveSong are idempotent at this level;
// existence of the song is the service's concern.
type PlaylistStore interface {
	List(ctx context.Context, pred query.Predicate, viewerID int64) ([]models.PlaylistView, error)
	Get(ctx context.Context, id, viewerID int64) (models.PlaylistView, error)
	Fetch(ctx context.Context, id int64) (models.Playlist, error)
	Create(ctx context.Context, p *models.Playlist) error
	Update(ctx context.Context, p *models.Playlist) error
	Delete(ctx context.Context, id int64) error
	AddSong(ctx context.Context, playlistID, songID int64) error
	RemoveSong(ctx context.Context, playlistID, songID int64) error
	ReplaceSongs(ctx context.Context, playlistID int64, songIDs []int64) error
}

type UserStore interface {
	Get(ctx context.Context, id int64) (models.User, error)
	Update(ctx context.Context, u *models.User) error
}

package service

import (
	"example.com/musicbox/internal/apperr"
	"example.com/musicbox/internal/models"
)

// Authorization checks. Each returns nil for ALLOW and a taxonomy error
// for DENY, and is called at the top of the service operation it guards.

// RequireUser denies anonymous requesters.
func RequireUser(u *models.User) error {
	if u == nil {
		return apperr.Unauthorized("authentication required")
	}
	return nil
}

// CanWriteSong allows update/delete only to the uploader. Seeded songs
// with no uploader have no write authority at all.
func CanWriteSong(u *models.User, s models.Song) error {
	if err := RequireUser(u); err != nil {
		return err
	}
	if s.UploaderID == nil || *s.UploaderID != u.ID {
		return apperr.Forbidden("only the uploader can modify this song")
	}
	return nil
}

// CanWritePlaylist allows update/delete only to the owner.
func CanWritePlaylist(u *models.User, p models.Playlist) error {
	if err := RequireUser(u); err != nil {
		return err
	}
	if p.UserID != u.ID {
		return apperr.Forbidden("only the owner can modify this playlist")
	}
	return nil
}

// CanReadPlaylist applies the visibility rule. A private playlist is
// reported as not found rather than forbidden, so its existence never
// leaks to non-owners.
func CanReadPlaylist(u *models.User, p models.Playlist) error {
	if p.IsPublic {
		return nil
	}
	if u != nil && p.UserID == u.ID {
		return nil
	}
	return apperr.NotFound("playlist not found")
}

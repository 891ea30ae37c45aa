package models

import "time"

// Playlist is owned by exactly one user. Membership lives in the
// playlist_songs link table and carries no ordering of its own.
type Playlist struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CoverImage  *string   `json:"cover_image"`
	UserID      int64     `json:"user"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlaylistView nests the full song representations for every member.
type PlaylistView struct {
	Playlist
	Songs []SongView `json:"songs"`
}

// PlaylistInput is the write-path representation: membership is
// established by song ids, never by nested song bodies.
type PlaylistInput struct {
	Name        string  `json:"name" form:"name"`
	Description string  `json:"description" form:"description"`
	CoverImage  string  `json:"cover_image" form:"cover_image"`
	IsPublic    *bool   `json:"is_public" form:"is_public"`
	SongIDs     []ID    `json:"song_ids" form:"song_ids"`
}

// PlaylistUpdate carries a partial update; a non-nil SongIDs replaces the
// whole membership set.
type PlaylistUpdate struct {
	Name        *string `json:"name" form:"name"`
	Description *string `json:"description" form:"description"`
	CoverImage  *string `json:"cover_image" form:"cover_image"`
	IsPublic    *bool   `json:"is_public" form:"is_public"`
	SongIDs     *[]ID   `json:"song_ids" form:"song_ids"`
}

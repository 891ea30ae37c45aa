package models

import (
	"strconv"
	"strings"
	"time"
)

// Reaction identifies which of the two association sets a toggle targets.
type Reaction string

const (
	ReactionLike    Reaction = "like"
	ReactionDislike Reaction = "dislike"
)

// Toggle result statuses returned by the like/dislike endpoints.
const (
	StatusLiked          = "liked"
	StatusLikeRemoved    = "like removed"
	StatusDisliked       = "disliked"
	StatusDislikeRemoved = "dislike removed"
)

// Song is a catalog row. UploaderID is nil for seeded songs that no
// user owns.
type Song struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Artist     string    `json:"artist"`
	Album      string    `json:"album"`
	Genre      string    `json:"genre"`
	Year       *int      `json:"year"`
	Duration   *int      `json:"duration"`
	AudioFile  string    `json:"audio_file"`
	CoverImage *string   `json:"cover_image"`
	IsFamous   bool      `json:"is_famous"`
	UploaderID *int64    `json:"uploader"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SongView is the API-facing representation of a song. The counts and the
// viewer-relative flags are recomputed on every request; IsLiked and
// IsDisliked are always false for anonymous viewers.
type SongView struct {
	Song
	UploaderUsername string `json:"uploader_username"`
	LikeCount        int    `json:"like_count"`
	DislikeCount     int    `json:"dislike_count"`
	IsLiked          bool   `json:"is_liked"`
	IsDisliked       bool   `json:"is_disliked"`
}

// SongInput carries the writable fields of a song create request. File
// fields hold storage references; multipart uploads fill them in the
// handler before the service sees the input.
type SongInput struct {
	Title      string `json:"title" form:"title"`
	Artist     string `json:"artist" form:"artist"`
	Album      string `json:"album" form:"album"`
	Genre      string `json:"genre" form:"genre"`
	Year       *int   `json:"year" form:"year"`
	Duration   *int   `json:"duration" form:"duration"`
	AudioFile  string `json:"audio_file" form:"audio_file"`
	CoverImage string `json:"cover_image" form:"cover_image"`
	IsFamous   bool   `json:"is_famous" form:"is_famous"`
}

// SongUpdate carries a partial update; nil fields are left untouched.
type SongUpdate struct {
	Title      *string `json:"title" form:"title"`
	Artist     *string `json:"artist" form:"artist"`
	Album      *string `json:"album" form:"album"`
	Genre      *string `json:"genre" form:"genre"`
	Year       *int    `json:"year" form:"year"`
	Duration   *int    `json:"duration" form:"duration"`
	AudioFile  *string `json:"audio_file" form:"audio_file"`
	CoverImage *string `json:"cover_image" form:"cover_image"`
	IsFamous   *bool   `json:"is_famous" form:"is_famous"`
}

// ID is an int64 that also accepts a quoted numeric string in JSON, since
// the web client sends song ids as strings.
type ID int64

func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "null" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*id = ID(v)
	return nil
}

func (id ID) Int64() int64 { return int64(id) }

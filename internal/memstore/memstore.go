// Package memstore is an in-memory implementation of the service store
// interfaces. Tests run the full service and handler stack against it
// without a database; it honors the same invariants the Postgres layer
// does (cascaded deletes, atomic reaction toggles, id ordering).
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"example.com/musicbox/internal/apperr"
	"example.com/musicbox/internal/models"
	"example.com/musicbox/internal/query"
	"example.com/musicbox/internal/service"
)

type Store struct {
	mu        sync.Mutex
	nextID    int64
	users     map[int64]models.User
	songs     map[int64]models.Song
	likes     map[int64]map[int64]bool // song id → user id set
	dislikes  map[int64]map[int64]bool
	playlists map[int64]models.Playlist
	members   map[int64]map[int64]bool // playlist id → song id set
}

func New() *Store {
	return &Store{
		nextID:    1,
		users:     make(map[int64]models.User),
		songs:     make(map[int64]models.Song),
		likes:     make(map[int64]map[int64]bool),
		dislikes:  make(map[int64]map[int64]bool),
		playlists: make(map[int64]models.Playlist),
		members:   make(map[int64]map[int64]bool),
	}
}

func (s *Store) Songs() service.SongStore         { return songStore{s} }
func (s *Store) Playlists() service.PlaylistStore { return playlistStore{s} }
func (s *Store) Users() service.UserStore         { return userStore{s} }

// AddUser seeds an account, assigning the next id.
func (s *Store) AddUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.nextID
	s.nextID++
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	s.users[u.ID] = u
	return u
}

func (s *Store) take() int64 {
	id := s.nextID
	s.nextID++
	return id
}

/* -------- songs -------- */

type songStore struct{ *Store }

func (s songStore) List(_ context.Context, pred query.Predicate, viewerID int64) ([]models.SongView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.SongView
	for _, id := range s.songIDs() {
		song := s.songs[id]
		if pred != nil && !pred.Match(songRow(song)) {
			continue
		}
		out = append(out, s.songView(song, viewerID))
	}
	return out, nil
}

func (s songStore) ListLiked(_ context.Context, userID int64) ([]models.SongView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.SongView
	for _, id := range s.songIDs() {
		if s.likes[id][userID] {
			out = append(out, s.songView(s.songs[id], userID))
		}
	}
	return out, nil
}

func (s songStore) Get(_ context.Context, id, viewerID int64) (models.SongView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	song, ok := s.songs[id]
	if !ok {
		return models.SongView{}, apperr.NotFound("song not found")
	}
	return s.songView(song, viewerID), nil
}

func (s songStore) Fetch(_ context.Context, id int64) (models.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	song, ok := s.songs[id]
	if !ok {
		return models.Song{}, apperr.NotFound("song not found")
	}
	return song, nil
}

func (s songStore) Create(_ context.Context, song *models.Song) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	song.ID = s.take()
	song.CreatedAt = time.Now()
	song.UpdatedAt = song.CreatedAt
	s.songs[song.ID] = *song
	return nil
}

func (s songStore) Update(_ context.Context, song *models.Song) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.songs[song.ID]; !ok {
		return apperr.NotFound("song not found")
	}
	song.UpdatedAt = time.Now()
	s.songs[song.ID] = *song
	return nil
}

func (s songStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.songs[id]; !ok {
		return apperr.NotFound("song not found")
	}
	delete(s.songs, id)
	delete(s.likes, id)
	delete(s.dislikes, id)
	for _, set := range s.members {
		delete(set, id)
	}
	return nil
}

func (s songStore) ToggleReaction(_ context.Context, songID, userID int64, r models.Reaction) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.songs[songID]; !ok {
		return "", apperr.NotFound("song not found")
	}
	own, opposite := s.likes, s.dislikes
	added, removed := models.StatusLiked, models.StatusLikeRemoved
	if r == models.ReactionDislike {
		own, opposite = opposite, own
		added, removed = models.StatusDisliked, models.StatusDislikeRemoved
	}
	delete(opposite[songID], userID)
	if own[songID][userID] {
		delete(own[songID], userID)
		return removed, nil
	}
	if own[songID] == nil {
		own[songID] = make(map[int64]bool)
	}
	own[songID][userID] = true
	return added, nil
}

func (s *Store) songIDs() []int64 {
	ids := make([]int64, 0, len(s.songs))
	for id := range s.songs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *Store) songView(song models.Song, viewerID int64) models.SongView {
	v := models.SongView{
		Song:         song,
		LikeCount:    len(s.likes[song.ID]),
		DislikeCount: len(s.dislikes[song.ID]),
		IsLiked:      viewerID != 0 && s.likes[song.ID][viewerID],
		IsDisliked:   viewerID != 0 && s.dislikes[song.ID][viewerID],
	}
	if song.UploaderID != nil {
		v.UploaderUsername = s.users[*song.UploaderID].Username
	}
	return v
}

func songRow(s models.Song) map[string]any {
	row := map[string]any{
		"title":     s.Title,
		"artist":    s.Artist,
		"album":     s.Album,
		"genre":     s.Genre,
		"is_famous": s.IsFamous,
	}
	if s.UploaderID != nil {
		row["uploader_id"] = *s.UploaderID
	}
	return row
}

/* -------- playlists -------- */

type playlistStore struct{ *Store }

func (s playlistStore) List(_ context.Context, pred query.Predicate, viewerID int64) ([]models.PlaylistView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.playlists))
	for id := range s.playlists {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []models.PlaylistView
	for _, id := range ids {
		pl := s.playlists[id]
		if pred != nil && !pred.Match(playlistRow(pl)) {
			continue
		}
		out = append(out, s.playlistView(pl, viewerID))
	}
	return out, nil
}

func (s playlistStore) Get(_ context.Context, id, viewerID int64) (models.PlaylistView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pl, ok := s.playlists[id]
	if !ok {
		return models.PlaylistView{}, apperr.NotFound("playlist not found")
	}
	return s.playlistView(pl, viewerID), nil
}

func (s playlistStore) Fetch(_ context.Context, id int64) (models.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pl, ok := s.playlists[id]
	if !ok {
		return models.Playlist{}, apperr.NotFound("playlist not found")
	}
	return pl, nil
}

func (s playlistStore) Create(_ context.Context, pl *models.Playlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pl.ID = s.take()
	pl.CreatedAt = time.Now()
	pl.UpdatedAt = pl.CreatedAt
	s.playlists[pl.ID] = *pl
	s.members[pl.ID] = make(map[int64]bool)
	return nil
}

func (s playlistStore) Update(_ context.Context, pl *models.Playlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.playlists[pl.ID]; !ok {
		return apperr.NotFound("playlist not found")
	}
	pl.UpdatedAt = time.Now()
	s.playlists[pl.ID] = *pl
	return nil
}

func (s playlistStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.playlists[id]; !ok {
		return apperr.NotFound("playlist not found")
	}
	delete(s.playlists, id)
	delete(s.members, id)
	return nil
}

func (s playlistStore) AddSong(_ context.Context, playlistID, songID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.members[playlistID] == nil {
		s.members[playlistID] = make(map[int64]bool)
	}
	s.members[playlistID][songID] = true
	return nil
}

func (s playlistStore) RemoveSong(_ context.Context, playlistID, songID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members[playlistID], songID)
	return nil
}

func (s playlistStore) ReplaceSongs(_ context.Context, playlistID int64, songIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := make(map[int64]bool, len(songIDs))
	for _, id := range songIDs {
		set[id] = true
	}
	s.members[playlistID] = set
	return nil
}

func (s *Store) playlistView(pl models.Playlist, viewerID int64) models.PlaylistView {
	view := models.PlaylistView{Playlist: pl, Songs: []models.SongView{}}
	for _, id := range s.songIDs() {
		if s.members[pl.ID][id] {
			view.Songs = append(view.Songs, s.songView(s.songs[id], viewerID))
		}
	}
	return view
}

func playlistRow(p models.Playlist) map[string]any {
	return map[string]any{
		"name":        p.Name,
		"description": p.Description,
		"user_id":     p.UserID,
		"is_public":   p.IsPublic,
	}
}

/* -------- users -------- */

type userStore struct{ *Store }

func (s userStore) Get(_ context.Context, id int64) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, apperr.NotFound("user not found")
	}
	return u, nil
}

func (s userStore) Update(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return apperr.NotFound("user not found")
	}
	for id, other := range s.users {
		if id != u.ID && (other.Username == u.Username || other.Email == u.Email) {
			return apperr.Validation("username or email already taken")
		}
	}
	s.users[u.ID] = *u
	return nil
}

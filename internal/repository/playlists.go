package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"example.com/musicbox/internal/apperr"
	"example.com/musicbox/internal/models"
	"example.com/musicbox/internal/query"
)

// PlaylistRepository implements service.PlaylistStore on Postgres.
type PlaylistRepository struct {
	pool *pgxpool.Pool
}

func NewPlaylistRepository(pool *pgxpool.Pool) *PlaylistRepository {
	return &PlaylistRepository{pool: pool}
}

const playlistColumns = `id, name, description, cover_image, user_id, is_public, created_at, updated_at`

func (r *PlaylistRepository) List(ctx context.Context, pred query.Predicate, viewerID int64) ([]models.PlaylistView, error) {
	args := []any{}
	sql := `SELECT ` + playlistColumns + ` FROM playlists`
	if pred != nil {
		sql += " WHERE " + pred.SQL(&args)
	}
	sql += " ORDER BY id"

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "listing playlists")
	}
	defer rows.Close()

	var out []models.PlaylistView
	var ids []int64
	for rows.Next() {
		var p models.Playlist
		if err := scanPlaylist(rows, &p); err != nil {
			return nil, errors.Wrap(err, "scanning playlist")
		}
		out = append(out, models.PlaylistView{Playlist: p, Songs: []models.SongView{}})
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	members, err := r.memberSongs(ctx, ids, viewerID)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if songs, ok := members[out[i].ID]; ok {
			out[i].Songs = songs
		}
	}
	return out, nil
}

func (r *PlaylistRepository) Get(ctx context.Context, id, viewerID int64) (models.PlaylistView, error) {
	var p models.Playlist
	err := scanPlaylist(r.pool.QueryRow(ctx,
		`SELECT `+playlistColumns+` FROM playlists WHERE id = $1`, id), &p)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.PlaylistView{}, apperr.NotFound("playlist not found")
	}
	if err != nil {
		return models.PlaylistView{}, errors.Wrap(err, "querying playlist")
	}

	members, err := r.memberSongs(ctx, []int64{id}, viewerID)
	if err != nil {
		return models.PlaylistView{}, err
	}
	view := models.PlaylistView{Playlist: p, Songs: []models.SongView{}}
	if songs, ok := members[id]; ok {
		view.Songs = songs
	}
	return view, nil
}

func (r *PlaylistRepository) Fetch(ctx context.Context, id int64) (models.Playlist, error) {
	var p models.Playlist
	err := scanPlaylist(r.pool.QueryRow(ctx,
		`SELECT `+playlistColumns+` FROM playlists WHERE id = $1`, id), &p)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Playlist{}, apperr.NotFound("playlist not found")
	}
	if err != nil {
		return models.Playlist{}, errors.Wrap(err, "fetching playlist")
	}
	return p, nil
}

func (r *PlaylistRepository) Create(ctx context.Context, p *models.Playlist) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO playlists (name, description, cover_image, user_id, is_public)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		p.Name, p.Description, p.CoverImage, p.UserID, p.IsPublic,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return errors.Wrap(err, "inserting playlist")
}

func (r *PlaylistRepository) Update(ctx context.Context, p *models.Playlist) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE playlists
		SET name = $1, description = $2, cover_image = $3, is_public = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`,
		p.Name, p.Description, p.CoverImage, p.IsPublic, p.ID,
	).Scan(&p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("playlist not found")
	}
	return errors.Wrap(err, "updating playlist")
}

func (r *PlaylistRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting playlist")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("playlist not found")
	}
	return nil
}

// AddSong links a song; re-adding an existing member is a no-op.
func (r *PlaylistRepository) AddSong(ctx context.Context, playlistID, songID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO playlist_songs (playlist_id, song_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, playlistID, songID)
	return errors.Wrap(err, "adding song to playlist")
}

// RemoveSong unlinks a song; removing a non-member is a no-op.
func (r *PlaylistRepository) RemoveSong(ctx context.Context, playlistID, songID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM playlist_songs WHERE playlist_id = $1 AND song_id = $2`,
		playlistID, songID)
	return errors.Wrap(err, "removing song from playlist")
}

// ReplaceSongs swaps the whole membership set in one transaction.
func (r *PlaylistRepository) ReplaceSongs(ctx context.Context, playlistID int64, songIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "beginning membership transaction")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM playlist_songs WHERE playlist_id = $1`, playlistID); err != nil {
		return errors.Wrap(err, "clearing playlist membership")
	}
	if len(songIDs) > 0 {
		if _, err := tx.Exec(ctx, `
			INSERT INTO playlist_songs (playlist_id, song_id)
			SELECT $1, unnest($2::bigint[])
			ON CONFLICT DO NOTHING`, playlistID, songIDs); err != nil {
			return errors.Wrap(err, "inserting playlist membership")
		}
	}
	return errors.Wrap(tx.Commit(ctx), "committing membership transaction")
}

// memberSongs loads the full song views for a batch of playlists keyed by
// playlist id.
func (r *PlaylistRepository) memberSongs(ctx context.Context, playlistIDs []int64, viewerID int64) (map[int64][]models.SongView, error) {
	sql := "SELECT ps.playlist_id," + songViewColumns + songViewFrom + `
		JOIN playlist_songs ps ON ps.song_id = s.id
		WHERE ps.playlist_id = ANY($2)
		ORDER BY s.id`
	rows, err := r.pool.Query(ctx, sql, viewerID, playlistIDs)
	if err != nil {
		return nil, errors.Wrap(err, "listing playlist songs")
	}
	defer rows.Close()

	members := make(map[int64][]models.SongView)
	for rows.Next() {
		var playlistID int64
		var v models.SongView
		if err := rows.Scan(
			&playlistID,
			&v.ID, &v.Title, &v.Artist, &v.Album, &v.Genre, &v.Year, &v.Duration,
			&v.AudioFile, &v.CoverImage, &v.IsFamous, &v.UploaderID,
			&v.CreatedAt, &v.UpdatedAt,
			&v.UploaderUsername, &v.LikeCount, &v.DislikeCount, &v.IsLiked, &v.IsDisliked,
		); err != nil {
			return nil, errors.Wrap(err, "scanning playlist song")
		}
		members[playlistID] = append(members[playlistID], v)
	}
	return members, rows.Err()
}

func scanPlaylist(row pgx.Row, p *models.Playlist) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.CoverImage,
		&p.UserID, &p.IsPublic, &p.CreatedAt, &p.UpdatedAt)
}

package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"example.com/musicbox/internal/apperr"
	"example.com/musicbox/internal/models"
	"example.com/musicbox/internal/query"
)

// SongRepository implements service.SongStore on Postgres.
type SongRepository struct {
	pool *pgxpool.Pool
}

func NewSongRepository(pool *pgxpool.Pool) *SongRepository {
	return &SongRepository{pool: pool}
}

// songViewColumns selects a full SongView. $1 is always the viewer id;
// an anonymous viewer binds 0, which matches no reaction rows.
const songViewColumns = `
	s.id, s.title, s.artist, s.album, s.genre, s.year, s.duration,
	s.audio_file, s.cover_image, s.is_famous, s.uploader_id,
	s.created_at, s.updated_at,
	COALESCE(u.username, '') AS uploader_username,
	(SELECT COUNT(*) FROM song_likes l WHERE l.song_id = s.id)::int AS like_count,
	(SELECT COUNT(*) FROM song_dislikes d WHERE d.song_id = s.id)::int AS dislike_count,
	EXISTS(SELECT 1 FROM song_likes l WHERE l.song_id = s.id AND l.user_id = $1) AS is_liked,
	EXISTS(SELECT 1 FROM song_dislikes d WHERE d.song_id = s.id AND d.user_id = $1) AS is_disliked`

const songViewFrom = ` FROM songs s LEFT JOIN users u ON u.id = s.uploader_id`

func (r *SongRepository) List(ctx context.Context, pred query.Predicate, viewerID int64) ([]models.SongView, error) {
	args := []any{viewerID}
	sql := "SELECT" + songViewColumns + songViewFrom
	if pred != nil {
		sql += " WHERE " + pred.SQL(&args)
	}
	sql += " ORDER BY s.id"

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "listing songs")
	}
	defer rows.Close()
	return scanSongViews(rows)
}

func (r *SongRepository) ListLiked(ctx context.Context, userID int64) ([]models.SongView, error) {
	sql := "SELECT" + songViewColumns + songViewFrom +
		` JOIN song_likes ml ON ml.song_id = s.id AND ml.user_id = $1 ORDER BY s.id`
	rows, err := r.pool.Query(ctx, sql, userID)
	if err != nil {
		return nil, errors.Wrap(err, "listing liked songs")
	}
	defer rows.Close()
	return scanSongViews(rows)
}

func (r *SongRepository) Get(ctx context.Context, id, viewerID int64) (models.SongView, error) {
	sql := "SELECT" + songViewColumns + songViewFrom + ` WHERE s.id = $2`
	v, err := scanSongView(r.pool.QueryRow(ctx, sql, viewerID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.SongView{}, apperr.NotFound("song not found")
	}
	if err != nil {
		return models.SongView{}, errors.Wrap(err, "querying song")
	}
	return v, nil
}

func (r *SongRepository) Fetch(ctx context.Context, id int64) (models.Song, error) {
	var s models.Song
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, artist, album, genre, year, duration, audio_file,
		       cover_image, is_famous, uploader_id, created_at, updated_at
		FROM songs WHERE id = $1`, id).Scan(
		&s.ID, &s.Title, &s.Artist, &s.Album, &s.Genre, &s.Year, &s.Duration,
		&s.AudioFile, &s.CoverImage, &s.IsFamous, &s.UploaderID, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Song{}, apperr.NotFound("song not found")
	}
	if err != nil {
		return models.Song{}, errors.Wrap(err, "fetching song")
	}
	return s, nil
}

func (r *SongRepository) Create(ctx context.Context, s *models.Song) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO songs (title, artist, album, genre, year, duration,
		                   audio_file, cover_image, is_famous, uploader_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`,
		s.Title, s.Artist, s.Album, s.Genre, s.Year, s.Duration,
		s.AudioFile, s.CoverImage, s.IsFamous, s.UploaderID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return errors.Wrap(err, "inserting song")
}

func (r *SongRepository) Update(ctx context.Context, s *models.Song) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE songs
		SET title = $1, artist = $2, album = $3, genre = $4, year = $5,
		    duration = $6, audio_file = $7, cover_image = $8, is_famous = $9,
		    updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at`,
		s.Title, s.Artist, s.Album, s.Genre, s.Year,
		s.Duration, s.AudioFile, s.CoverImage, s.IsFamous, s.ID,
	).Scan(&s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("song not found")
	}
	return errors.Wrap(err, "updating song")
}

func (r *SongRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM songs WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting song")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("song not found")
	}
	return nil
}

// ToggleReaction clears the opposite set and toggles the requested one
// inside a single transaction, so a song is never left simultaneously
// liked and disliked by the same user.
func (r *SongRepository) ToggleReaction(ctx context.Context, songID, userID int64, reaction models.Reaction) (string, error) {
	own, opposite := "song_likes", "song_dislikes"
	added, removed := models.StatusLiked, models.StatusLikeRemoved
	if reaction == models.ReactionDislike {
		own, opposite = opposite, own
		added, removed = models.StatusDisliked, models.StatusDislikeRemoved
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", errors.Wrap(err, "beginning toggle transaction")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE song_id = $1 AND user_id = $2`, opposite),
		songID, userID); err != nil {
		return "", errors.Wrap(err, "clearing opposite reaction")
	}

	tag, err := tx.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE song_id = $1 AND user_id = $2`, own),
		songID, userID)
	if err != nil {
		return "", errors.Wrap(err, "toggling reaction")
	}

	status := removed
	if tag.RowsAffected() == 0 {
		if _, err := tx.Exec(ctx,
			fmt.Sprintf(`INSERT INTO %s (song_id, user_id) VALUES ($1, $2)`, own),
			songID, userID); err != nil {
			return "", errors.Wrap(err, "adding reaction")
		}
		status = added
	}

	if err := tx.Commit(ctx); err != nil {
		return "", errors.Wrap(err, "committing toggle transaction")
	}
	return status, nil
}

func scanSongView(row pgx.Row) (models.SongView, error) {
	var v models.SongView
	err := row.Scan(
		&v.ID, &v.Title, &v.Artist, &v.Album, &v.Genre, &v.Year, &v.Duration,
		&v.AudioFile, &v.CoverImage, &v.IsFamous, &v.UploaderID,
		&v.CreatedAt, &v.UpdatedAt,
		&v.UploaderUsername, &v.LikeCount, &v.DislikeCount, &v.IsLiked, &v.IsDisliked,
	)
	return v, err
}

func scanSongViews(rows pgx.Rows) ([]models.SongView, error) {
	var out []models.SongView
	for rows.Next() {
		v, err := scanSongView(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scanning song")
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Package repository is the pgx-backed persistence layer. Schema is
// bootstrapped idempotently on connect so a fresh database comes up
// without a separate migration step.
package repository

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type DB struct {
	Pool *pgxpool.Pool
}

// Connect opens the pool, sanity-checks the connection, and ensures the
// schema exists.
func Connect(ctx context.Context, dsn string, logger *log.Logger) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to database")
	}

	var currentDB, currentUser string
	if err := pool.QueryRow(ctx, "SELECT current_database(), current_user").Scan(&currentDB, &currentUser); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "checking database connection")
	}
	logger.Info("connected to database", "db", currentDB, "user", currentUser)

	db := &DB{Pool: pool}
	if err := db.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	logger.Info("database schema verified")
	return db, nil
}

func (db *DB) Close() { db.Pool.Close() }

// ensureSchema creates all required tables and indexes if they don't
// exist. Link tables cascade on both sides: deleting a song clears it
// out of every playlist and reaction set, deleting a playlist never
// touches its songs.
func (db *DB) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS songs (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			artist TEXT NOT NULL,
			album TEXT NOT NULL DEFAULT '',
			genre TEXT NOT NULL DEFAULT '',
			year INTEGER,
			duration INTEGER,
			audio_file TEXT NOT NULL,
			cover_image TEXT,
			is_famous BOOLEAN NOT NULL DEFAULT FALSE,
			uploader_id BIGINT REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS song_likes (
			song_id BIGINT NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			PRIMARY KEY (song_id, user_id)
		);`,
		`CREATE TABLE IF NOT EXISTS song_dislikes (
			song_id BIGINT NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			PRIMARY KEY (song_id, user_id)
		);`,
		`CREATE TABLE IF NOT EXISTS playlists (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			cover_image TEXT,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			is_public BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS playlist_songs (
			playlist_id BIGINT NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
			song_id BIGINT NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
			PRIMARY KEY (playlist_id, song_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_songs_uploader ON songs(uploader_id);`,
		`CREATE INDEX IF NOT EXISTS idx_songs_genre ON songs(genre);`,
		`CREATE INDEX IF NOT EXISTS idx_playlists_user ON playlists(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_song_likes_user ON song_likes(user_id);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return errors.Wrap(err, "ensuring schema")
		}
	}
	return nil
}

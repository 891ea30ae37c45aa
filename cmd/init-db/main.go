// Command init-db bootstraps the schema and seeds demo accounts plus a
// handful of famous songs with no uploader. It also prints a long-lived
// dev token per seeded user so the API can be exercised immediately.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"example.com/musicbox/internal/auth"
	"example.com/musicbox/internal/config"
	"example.com/musicbox/internal/models"
	"example.com/musicbox/internal/repository"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "init-db"})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configuration error", "err", err)
	}

	ctx := context.Background()
	db, err := repository.Connect(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("database error", "err", err)
	}
	defer db.Close()

	verifier := auth.NewVerifier(cfg.JWTSecret)

	users := []struct{ username, email string }{
		{"alice", "alice@example.com"},
		{"bob", "bob@example.com"},
	}
	for _, u := range users {
		var id int64
		err := db.Pool.QueryRow(ctx, `
			INSERT INTO users (username, email)
			VALUES ($1, $2)
			ON CONFLICT (username) DO UPDATE SET email = EXCLUDED.email
			RETURNING id`, u.username, u.email).Scan(&id)
		if err != nil {
			logger.Fatal("seeding user", "username", u.username, "err", err)
		}
		token, err := verifier.Sign(models.User{ID: id, Username: u.username}, 30*24*time.Hour)
		if err != nil {
			logger.Fatal("signing dev token", "err", err)
		}
		fmt.Printf("%s\t%s\n", u.username, token)
	}

	seeds := []struct {
		title, artist, album, genre string
		year                        int
	}{
		{"Bohemian Rhapsody", "Queen", "A Night at the Opera", "rock", 1975},
		{"Billie Jean", "Michael Jackson", "Thriller", "pop", 1982},
		{"So What", "Miles Davis", "Kind of Blue", "jazz", 1959},
		{"One More Time", "Daft Punk", "Discovery", "electronic", 2000},
	}
	for _, s := range seeds {
		_, err := db.Pool.Exec(ctx, `
			INSERT INTO songs (title, artist, album, genre, year, audio_file, is_famous)
			SELECT $1, $2, $3, $4, $5, $6, TRUE
			WHERE NOT EXISTS (SELECT 1 FROM songs WHERE title = $1 AND artist = $2)`,
			s.title, s.artist, s.album, s.genre, s.year,
			fmt.Sprintf("seed/%s.mp3", s.title))
		if err != nil {
			logger.Fatal("seeding song", "title", s.title, "err", err)
		}
	}

	logger.Info("seed complete", "users", len(users), "songs", len(seeds))
}

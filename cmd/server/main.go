package main

import (
	"context"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"example.com/musicbox/internal/auth"
	"example.com/musicbox/internal/config"
	"example.com/musicbox/internal/handlers"
	"example.com/musicbox/internal/repository"
	"example.com/musicbox/internal/service"
	"example.com/musicbox/internal/storage"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "musicbox",
	})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configuration error", "err", err)
	}

	db, err := repository.Connect(context.Background(), cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("database error", "err", err)
	}
	defer db.Close()

	verifier := auth.NewVerifier(cfg.JWTSecret)
	files := storage.NewDiskStore(cfg.MediaRoot)

	songStore := repository.NewSongRepository(db.Pool)
	songs := service.NewSongService(songStore, logger)
	playlists := service.NewPlaylistService(repository.NewPlaylistRepository(db.Pool), songStore, logger)
	users := service.NewUserService(repository.NewUserRepository(db.Pool), logger)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	handlers.Register(router, verifier,
		handlers.NewSongHandler(songs, files),
		handlers.NewPlaylistHandler(playlists, files),
		handlers.NewUserHandler(users),
	)

	logger.Info("starting server", "addr", cfg.Addr)
	if err := router.Run(cfg.Addr); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}

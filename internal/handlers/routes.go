package handlers

import (
	"github.com/gin-gonic/gin"

	"example.com/musicbox/internal/auth"
)

/* -------- API routes -------- */

// Register wires the resource routes under /api. Token resolution runs
// on every route; RequireUser guards the ones that need a requester.
func Register(r *gin.Engine, verifier *auth.Verifier, songs *SongHandler, playlists *PlaylistHandler, users *UserHandler) {
	r.Use(auth.Middleware(verifier))
	authed := auth.RequireUser()

	api := r.Group("/api")

	api.GET("/songs", songs.List)
	api.POST("/songs", authed, songs.Create)
	api.GET("/songs/liked", authed, songs.Liked)
	api.GET("/songs/:id", songs.Get)
	api.PUT("/songs/:id", authed, songs.Update)
	api.PATCH("/songs/:id", authed, songs.Update)
	api.DELETE("/songs/:id", authed, songs.Delete)
	api.POST("/songs/:id/like", authed, songs.Like)
	api.POST("/songs/:id/dislike", authed, songs.Dislike)

	api.GET("/playlists", authed, playlists.List)
	api.POST("/playlists", authed, playlists.Create)
	api.GET("/playlists/:id", authed, playlists.Get)
	api.PUT("/playlists/:id", authed, playlists.Update)
	api.PATCH("/playlists/:id", authed, playlists.Update)
	api.DELETE("/playlists/:id", authed, playlists.Delete)
	api.POST("/playlists/:id/add_song", authed, playlists.AddSong)
	api.POST("/playlists/:id/remove_song", authed, playlists.RemoveSong)

	api.GET("/users/me", authed, users.Me)
	api.PATCH("/users/me", authed, users.UpdateMe)
}

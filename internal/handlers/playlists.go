package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"example.com/musicbox/internal/apperr"
	"example.com/musicbox/internal/auth"
	"example.com/musicbox/internal/models"
	"example.com/musicbox/internal/query"
	"example.com/musicbox/internal/service"
	"example.com/musicbox/internal/storage"
)

type PlaylistHandler struct {
	svc   *service.PlaylistService
	files storage.FileStore
}

func NewPlaylistHandler(svc *service.PlaylistService, files storage.FileStore) *PlaylistHandler {
	return &PlaylistHandler{svc: svc, files: files}
}

/* -------- GET /api/playlists -------- */

func (h *PlaylistHandler) List(c *gin.Context) {
	params := query.PlaylistListParams{Search: c.Query("search")}
	playlists, err := h.svc.List(c.Request.Context(), auth.CurrentUser(c), params)
	if err != nil {
		respondError(c, err)
		return
	}
	if playlists == nil {
		playlists = []models.PlaylistView{}
	}
	c.JSON(http.StatusOK, playlists)
}

/* -------- POST /api/playlists -------- */

func (h *PlaylistHandler) Create(c *gin.Context) {
	var in models.PlaylistInput
	if err := c.ShouldBind(&in); err != nil {
		respondError(c, apperr.Validation("could not parse playlist fields"))
		return
	}
	if ref, ok, err := h.saveCover(c); err != nil {
		respondError(c, err)
		return
	} else if ok {
		in.CoverImage = ref
	}

	pl, err := h.svc.Create(c.Request.Context(), auth.CurrentUser(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pl)
}

/* -------- GET /api/playlists/:id -------- */

func (h *PlaylistHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	pl, err := h.svc.Get(c.Request.Context(), auth.CurrentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pl)
}

/* -------- PUT/PATCH /api/playlists/:id -------- */

func (h *PlaylistHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var in models.PlaylistUpdate
	if err := c.ShouldBind(&in); err != nil {
		respondError(c, apperr.Validation("could not parse playlist fields"))
		return
	}
	if ref, ok, err := h.saveCover(c); err != nil {
		respondError(c, err)
		return
	} else if ok {
		in.CoverImage = &ref
	}

	pl, err := h.svc.Update(c.Request.Context(), auth.CurrentUser(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pl)
}

/* -------- DELETE /api/playlists/:id -------- */

func (h *PlaylistHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), auth.CurrentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

/* -------- POST /api/playlists/:id/add_song, /remove_song -------- */

func (h *PlaylistHandler) AddSong(c *gin.Context) {
	h.memberAction(c, h.svc.AddSong, "song added")
}

func (h *PlaylistHandler) RemoveSong(c *gin.Context) {
	h.memberAction(c, h.svc.RemoveSong, "song removed")
}

func (h *PlaylistHandler) memberAction(c *gin.Context, action func(ctx context.Context, u *models.User, playlistID, songID int64) error, status string) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var body struct {
		SongID *models.ID `json:"song_id" form:"song_id"`
	}
	if err := c.ShouldBind(&body); err != nil || body.SongID == nil {
		respondError(c, apperr.Validation("No song ID provided"))
		return
	}
	if err := action(c.Request.Context(), auth.CurrentUser(c), id, body.SongID.Int64()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (h *PlaylistHandler) saveCover(c *gin.Context) (string, bool, error) {
	file, err := c.FormFile("cover_image")
	if err != nil {
		return "", false, nil
	}
	f, err := file.Open()
	if err != nil {
		return "", false, apperr.Validation("could not read uploaded file")
	}
	defer f.Close()
	ref, err := h.files.Save(storage.PlaylistCoverKey(file.Filename), f)
	if err != nil {
		return "", false, err
	}
	return ref, true, nil
}

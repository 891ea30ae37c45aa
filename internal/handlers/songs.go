package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"example.com/musicbox/internal/apperr"
	"example.com/musicbox/internal/auth"
	"example.com/musicbox/internal/models"
	"example.com/musicbox/internal/query"
	"example.com/musicbox/internal/service"
	"example.com/musicbox/internal/storage"
)

type SongHandler struct {
	svc   *service.SongService
	files storage.FileStore
}

func NewSongHandler(svc *service.SongService, files storage.FileStore) *SongHandler {
	return &SongHandler{svc: svc, files: files}
}

/* -------- GET /api/songs -------- */

func (h *SongHandler) List(c *gin.Context) {
	params := query.SongListParams{
		Genre:    c.Query("genre"),
		Uploader: c.Query("uploader"),
		Search:   c.Query("search"),
	}
	if v := c.Query("is_famous"); v != "" {
		famous := strings.EqualFold(v, "true")
		params.Famous = &famous
	}

	songs, err := h.svc.List(c.Request.Context(), auth.CurrentUser(c), params)
	if err != nil {
		respondError(c, err)
		return
	}
	if songs == nil {
		songs = []models.SongView{}
	}
	c.JSON(http.StatusOK, songs)
}

/* -------- POST /api/songs -------- */

func (h *SongHandler) Create(c *gin.Context) {
	var in models.SongInput
	if err := c.ShouldBind(&in); err != nil {
		respondError(c, apperr.Validation("could not parse song fields"))
		return
	}
	// Multipart uploads win over any reference passed in the body.
	if ref, ok, err := h.saveUpload(c, "audio_file", storage.SongKey); err != nil {
		respondError(c, err)
		return
	} else if ok {
		in.AudioFile = ref
	}
	if ref, ok, err := h.saveUpload(c, "cover_image", storage.CoverKey); err != nil {
		respondError(c, err)
		return
	} else if ok {
		in.CoverImage = ref
	}

	song, err := h.svc.Create(c.Request.Context(), auth.CurrentUser(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, song)
}

/* -------- GET /api/songs/:id -------- */

func (h *SongHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	song, err := h.svc.Get(c.Request.Context(), auth.CurrentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, song)
}

/* -------- PUT/PATCH /api/songs/:id -------- */

func (h *SongHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var in models.SongUpdate
	if err := c.ShouldBind(&in); err != nil {
		respondError(c, apperr.Validation("could not parse song fields"))
		return
	}
	if ref, ok, err := h.saveUpload(c, "audio_file", storage.SongKey); err != nil {
		respondError(c, err)
		return
	} else if ok {
		in.AudioFile = &ref
	}
	if ref, ok, err := h.saveUpload(c, "cover_image", storage.CoverKey); err != nil {
		respondError(c, err)
		return
	} else if ok {
		in.CoverImage = &ref
	}

	song, err := h.svc.Update(c.Request.Context(), auth.CurrentUser(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, song)
}

/* -------- DELETE /api/songs/:id -------- */

func (h *SongHandler) Delete(c *gin.Context) {
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

/* -------- POST /api/songs/:id/like, /api/songs/:id/dislike -------- */

func (h *SongHandler) Like(c *gin.Context)    { h.react(c, h.svc.Like) }
func (h *SongHandler) Dislike(c *gin.Context) { h.react(c, h.svc.Dislike) }

func (h *SongHandler) react(c *gin.Context, toggle func(ctx context.Context, u *models.User, id int64) (string, error)) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	status, err := toggle(c.Request.Context(), auth.CurrentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

/* -------- GET /api/songs/liked -------- */

func (h *SongHandler) Liked(c *gin.Context) {
	songs, err := h.svc.Liked(c.Request.Context(), auth.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if songs == nil {
		songs = []models.SongView{}
	}
	c.JSON(http.StatusOK, songs)
}

// saveUpload stores an attached multipart file, if the request carries
// one under field, and returns the stored reference.
func (h *SongHandler) saveUpload(c *gin.Context, field string, keyFn func(string) string) (string, bool, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", false, nil
	}
	f, err := file.Open()
	if err != nil {
		return "", false, apperr.Validation("could not read uploaded file")
	}
	defer f.Close()
	ref, err := h.files.Save(keyFn(file.Filename), f)
	if err != nil {
		return "", false, err
	}
	return ref, true, nil
}

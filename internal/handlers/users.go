package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"example.com/musicbox/internal/apperr"
	"example.com/musicbox/internal/auth"
	"example.com/musicbox/internal/models"
	"example.com/musicbox/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

/* -------- GET /api/users/me -------- */

func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.svc.Profile(c.Request.Context(), auth.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

/* -------- PATCH /api/users/me -------- */

func (h *UserHandler) UpdateMe(c *gin.Context) {
	var in models.UserUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, apperr.Validation("could not parse profile fields"))
		return
	}
	u, err := h.svc.UpdateProfile(c.Request.Context(), auth.CurrentUser(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

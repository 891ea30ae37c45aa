// Package handlers maps the HTTP surface onto the services. Handlers
// stay thin: bind, call, translate the error, serialize.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"example.com/musicbox/internal/apperr"
)

// respondError translates a taxonomy error into its status and message.
// Anything outside the taxonomy is logged and masked as a 500.
func respondError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "err", err)
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}

// pathID parses the :id route parameter. A non-numeric id reads the same
// as an absent row.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.NotFound("not found")
	}
	return id, nil
}

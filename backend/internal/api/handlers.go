package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"movie-graph/backend/internal/movies"
	apperrors "movie-graph/backend/pkg/errors"
	"go.uber.org/zap"
)

type handlers struct {
	svc    CatalogService
	logger *zap.Logger
}

// GET /movies/:title
func (h *handlers) searchMovies(c *gin.Context) {
	found, err := h.svc.SearchMovies(c.Request.Context(), c.Param("title"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// GET /movie/:id
func (h *handlers) getMovie(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}
	m, err := h.svc.GetMovie(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// POST /movie
func (h *handlers) createMovie(c *gin.Context) {
	var payload movies.Movie
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.svc.CreateMovie(c.Request.Context(), &payload)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// PUT /movie/:id
func (h *handlers) updateMovie(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}
	var payload movies.Movie
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.svc.UpdateMovie(c.Request.Context(), id, &payload)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /movie/:id
func (h *handlers) deleteMovie(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}
	deleted, err := h.svc.DeleteMovie(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("movie %s was deleted", deleted.Title),
		"movie":   deleted,
	})
}

// GET /actors/:name
func (h *handlers) searchActors(c *gin.Context) {
	found, err := h.svc.SearchActors(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func movieID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid movie identifier: %q", c.Param("id"))})
		return 0, false
	}
	return id, true
}

// writeError maps domain error kinds to HTTP status codes
func (h *handlers) writeError(c *gin.Context, err error) {
	var validationErr *apperrors.ErrValidationFailed
	var notFoundErr *apperrors.ErrNotFound

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Message})
	default:
		h.logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String(requestIDKey, c.GetString(requestIDKey)),
			zap.Bool("retryable", apperrors.IsRetryable(err)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

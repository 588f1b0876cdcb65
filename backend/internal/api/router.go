package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"movie-graph/backend/internal/movies"
	"go.uber.org/zap"
)

// CatalogService is the set of catalog operations the HTTP layer exposes
type CatalogService interface {
	SearchMovies(ctx context.Context, title string) ([]*movies.Movie, error)
	GetMovie(ctx context.Context, id int64) (*movies.Movie, error)
	SearchActors(ctx context.Context, name string) ([]*movies.Actor, error)
	CreateMovie(ctx context.Context, m *movies.Movie) (*movies.Movie, error)
	UpdateMovie(ctx context.Context, id int64, m *movies.Movie) (*movies.Movie, error)
	DeleteMovie(ctx context.Context, id int64) (*movies.Movie, error)
}

// NewRouter builds the gin engine with middleware and all catalog routes
func NewRouter(svc CatalogService, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(requestID())
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())
	router.Use(cors())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := &handlers{svc: svc, logger: log}

	router.GET("/movies/:title", h.searchMovies)
	router.GET("/movie/:id", h.getMovie)
	router.POST("/movie", h.createMovie)
	router.PUT("/movie/:id", h.updateMovie)
	router.DELETE("/movie/:id", h.deleteMovie)

	router.GET("/actors/:name", h.searchActors)

	return router
}

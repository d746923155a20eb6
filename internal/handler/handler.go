package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/user/moviecatalog/internal/config"
	"github.com/user/moviecatalog/internal/middleware"
	"github.com/user/moviecatalog/internal/repository"
	"github.com/user/moviecatalog/internal/service"
	"github.com/user/moviecatalog/internal/utils"
)

// Handler HTTP handlers of the movie views
type Handler struct {
	Config   *config.Config
	Catalogs *service.CatalogService
	Movies   *service.MovieService
	Images   *ImageProxy
	logger   zerolog.Logger
}

// NewHandler creates the handlers on top of the repositories
func NewHandler(repos *repository.Repositories, cfg *config.Config, logger zerolog.Logger) *Handler {
	h := &Handler{
		Config:   cfg,
		Catalogs: service.NewCatalogService(repos.Movie, logger.With().Str("view", "catalog").Logger()),
		Movies:   service.NewMovieService(repos.Movie, logger.With().Str("view", "movie").Logger()),
		logger:   logger,
	}

	if cfg.ProxyImages {
		h.Images = NewImageProxy(
			utils.NewHTTPClient(cfg.BackendTimeout),
			cfg.ImageCacheSize,
			cfg.ImageCacheTTL,
			logger.With().Str("component", "image_proxy").Logger(),
		)
	}

	return h
}

// RenderData common template data merged with data
func (h *Handler) RenderData(c *gin.Context, data gin.H) gin.H {
	res := gin.H{
		"SiteName":  h.Config.SiteName,
		"SiteUrl":   h.Config.SiteUrl,
		"Path":      c.Request.URL.Path,
		"RequestID": middleware.GetRequestID(c),
		"Flashes":   middleware.Flashes(c),
	}

	for k, v := range data {
		res[k] = v
	}

	return res
}

// NotFound 404 page
func (h *Handler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", h.RenderData(c, gin.H{
		"Title": "Not found - " + h.Config.SiteName,
	}))
}

// Health liveness probe
func (h *Handler) Health(c *gin.Context) {
	utils.Success(c, gin.H{"status": "ok"})
}

// statusFor HTTP status for a failed backend call
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

// errorMessage banner text for a failed backend call
func errorMessage(err error) string {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return "This movie does not exist anymore."
	case errors.Is(err, repository.ErrValidation):
		return "The movie service rejected the movie."
	default:
		return "The movie service is unavailable, please try again."
	}
}

// MoviePath path of the detail view of id
func MoviePath(id string) string {
	return "/" + url.PathEscape(id)
}

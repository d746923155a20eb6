package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/moviecatalog/internal/service"
)

// Catalog list of movies with search, genre and author filters
func (h *Handler) Catalog(c *gin.Context) {
	filter := service.CatalogFilter{
		Search: c.Query("q"),
		Genre:  c.Query("genre"),
		Author: c.Query("author"),
	}

	view := h.Catalogs.Activate(c.Request.Context(), filter)

	status := http.StatusOK
	var errMsg string
	if view.State == service.StateError {
		status = http.StatusBadGateway
		errMsg = errorMessage(view.Err)
	}

	c.HTML(status, "catalog.html", h.RenderData(c, gin.H{
		"Title":   h.Config.SiteName,
		"State":   view.State.String(),
		"Movies":  view.Visible(),
		"Total":   len(view.Movies),
		"Filter":  view.Filter,
		"Genres":  view.Genres(),
		"Authors": view.Authors(),
		"Error":   errMsg,
	}))
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/moviecatalog/internal/middleware"
	"github.com/user/moviecatalog/internal/service"
)

// Movie detail view
func (h *Handler) Movie(c *gin.Context) {
	id := c.Param("id")

	view := h.Movies.Detail(c.Request.Context(), id)
	if view.NotFound() {
		h.NotFound(c)
		return
	}

	h.renderDetail(c, view)
}

// DeleteMovie deletes the movie and returns to the catalog. A failed
// delete stays on the detail view.
func (h *Handler) DeleteMovie(c *gin.Context) {
	id := c.Param("id")
	view := &service.DetailView{ID: id, State: service.StateLoading}

	if err := h.Movies.Delete(c.Request.Context(), view); err != nil {
		_ = c.Error(err)
		h.renderDetail(c, view)
		return
	}

	middleware.AddFlash(c, "Movie deleted.")
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) renderDetail(c *gin.Context, view *service.DetailView) {
	status := http.StatusOK
	var errMsg string
	title := h.Config.SiteName
	if view.State == service.StateError {
		status = statusFor(view.Err)
		errMsg = errorMessage(view.Err)
	} else if view.Movie != nil {
		title = view.Movie.Title + " - " + h.Config.SiteName
	}

	c.HTML(status, "detail.html", h.RenderData(c, gin.H{
		"Title":       title,
		"State":       view.State.String(),
		"ID":          view.ID,
		"Movie":       view.Movie,
		"Error":       errMsg,
		"DeleteToken": middleware.FormTokenFor(c, "/"+view.ID+"/delete"),
	}))
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/moviecatalog/internal/middleware"
	"github.com/user/moviecatalog/internal/model"
	"github.com/user/moviecatalog/internal/service"
)

// EditPage edit form pre-populated from the backend
func (h *Handler) EditPage(c *gin.Context) {
	id := c.Param("id")

	view := h.Movies.Edit(c.Request.Context(), id)
	if view.State == service.StateError {
		h.renderEditForm(c, statusFor(view.Err), id, view.Form, nil, "The movie could not be loaded. "+errorMessage(view.Err), false)
		return
	}

	h.renderEdit(c, http.StatusOK, id, view.Form, nil, "")
}

// UpdateMovie replaces the movie with the submitted fields, then shows it
func (h *Handler) UpdateMovie(c *gin.Context) {
	id := c.Param("id")

	var form model.EditForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderEdit(c, http.StatusBadRequest, id, form, nil, "The form could not be read.")
		return
	}

	movie, err := h.Movies.Update(c.Request.Context(), id, form)
	if err != nil {
		var fe model.FieldErrors
		if errors.As(err, &fe) {
			h.renderEdit(c, http.StatusUnprocessableEntity, id, form, fe, "")
			return
		}
		_ = c.Error(err)
		h.renderEdit(c, statusFor(err), id, form, nil, "The movie could not be saved. "+errorMessage(err))
		return
	}

	middleware.AddFlash(c, "Movie updated.")
	c.Redirect(http.StatusSeeOther, MoviePath(movie.ID))
}

func (h *Handler) renderEdit(c *gin.Context, status int, id string, form model.EditForm, fe model.FieldErrors, errMsg string) {
	h.renderEditForm(c, status, id, form, fe, errMsg, true)
}

// renderEditForm the form is left out unless the movie was loaded
func (h *Handler) renderEditForm(c *gin.Context, status int, id string, form model.EditForm, fe model.FieldErrors, errMsg string, loaded bool) {
	c.HTML(status, "edit.html", h.RenderData(c, gin.H{
		"Loaded": loaded,
		"Title":  "Edit movie - " + h.Config.SiteName,
		"ID":     id,
		"Form":   form,
		"Errors": fe,
		"Error":  errMsg,
		"Token":  middleware.FormTokenFor(c, "/edit/"+id),
		"Cancel": middleware.BackTarget(c, MoviePath(id)),
	}))
}

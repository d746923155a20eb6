package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/moviecatalog/internal/middleware"
	"github.com/user/moviecatalog/internal/model"
)

// CreatePage empty create form
func (h *Handler) CreatePage(c *gin.Context) {
	h.renderCreate(c, http.StatusOK, model.CreateForm{}, nil, "")
}

// CreateMovie validates and stores a new movie, then shows it
func (h *Handler) CreateMovie(c *gin.Context) {
	var form model.CreateForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderCreate(c, http.StatusBadRequest, form, nil, "The form could not be read.")
		return
	}

	movie, err := h.Movies.Create(c.Request.Context(), form)
	if err != nil {
		var fe model.FieldErrors
		if errors.As(err, &fe) {
			h.renderCreate(c, http.StatusUnprocessableEntity, form, fe, "")
			return
		}
		_ = c.Error(err)
		h.renderCreate(c, statusFor(err), form, nil, "The movie could not be created. "+errorMessage(err))
		return
	}

	middleware.AddFlash(c, "Movie created.")
	c.Redirect(http.StatusSeeOther, MoviePath(movie.ID))
}

func (h *Handler) renderCreate(c *gin.Context, status int, form model.CreateForm, fe model.FieldErrors, errMsg string) {
	c.HTML(status, "create.html", h.RenderData(c, gin.H{
		"Title":  "New movie - " + h.Config.SiteName,
		"Form":   form,
		"Errors": fe,
		"Error":  errMsg,
		"Token":  middleware.FormTokenFor(c, "/create"),
	}))
}

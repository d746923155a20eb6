package service

import (
	"context"
	"fmt"

	"github.com/user/moviecatalog/internal/model"
)

// EditView state of the edit form for one id
type EditView struct {
	ID    string
	State ViewState
	Form  model.EditForm
	Err   error
}

// Edit loads the movie and pre-populates the form. A failed fetch leaves
// the form empty and the view in StateError.
func (s *MovieService) Edit(ctx context.Context, id string) *EditView {
	view := &EditView{ID: id, State: StateLoading}

	movie, err := s.store.GetMovie(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("movie_id", id).Msg("failed to load movie for editing")
		view.State = StateError
		view.Err = err
		return view
	}

	view.Form = model.NewEditForm(*movie)
	view.State = StateLoaded
	return view
}

// Update replaces the movie with the five form fields. Backend fields the
// form does not track are dropped.
func (s *MovieService) Update(ctx context.Context, id string, form model.EditForm) (*model.Movie, error) {
	if fe := form.Validate(); fe != nil {
		return nil, fe
	}

	movie, err := s.store.UpdateMovie(ctx, id, form.Draft())
	if err != nil {
		s.logger.Error().Err(err).Str("movie_id", id).Msg("failed to update movie")
		return nil, fmt.Errorf("update movie %s: %w", id, err)
	}

	s.logger.Info().Str("movie_id", movie.ID).Msg("movie updated")
	return movie, nil
}

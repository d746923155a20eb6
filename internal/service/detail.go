package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/user/moviecatalog/internal/model"
	"github.com/user/moviecatalog/internal/repository"
)

// DetailView state of the detail view for one id
type DetailView struct {
	ID    string
	State ViewState
	Movie *model.Movie
	Err   error
}

// NotFound the backend does not know the id
func (v *DetailView) NotFound() bool {
	return v.State == StateError && repository.IsNotFound(v.Err)
}

// MovieService single-movie views: detail, create and edit
type MovieService struct {
	store  MovieStore
	logger zerolog.Logger
}

// NewMovieService creates the movie service
func NewMovieService(store MovieStore, logger zerolog.Logger) *MovieService {
	return &MovieService{
		store:  store,
		logger: logger,
	}
}

// Detail fetches the movie behind id
func (s *MovieService) Detail(ctx context.Context, id string) *DetailView {
	view := &DetailView{ID: id, State: StateLoading}

	movie, err := s.store.GetMovie(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("movie_id", id).Msg("failed to load movie")
		view.State = StateError
		view.Err = err
		return view
	}

	view.Movie = movie
	view.State = StateLoaded
	return view
}

// Delete removes the movie of view. On failure the view switches to the
// error state and the caller must not navigate away.
func (s *MovieService) Delete(ctx context.Context, view *DetailView) error {
	if err := s.store.DeleteMovie(ctx, view.ID); err != nil {
		s.logger.Error().Err(err).Str("movie_id", view.ID).Msg("failed to delete movie")
		view.State = StateError
		view.Err = err
		return err
	}

	s.logger.Info().Str("movie_id", view.ID).Msg("movie deleted")
	return nil
}

package service

import (
	"context"
	"fmt"

	"github.com/user/moviecatalog/internal/model"
)

// Create validates the form and stores a new movie. Invalid input is
// returned as model.FieldErrors without contacting the backend.
func (s *MovieService) Create(ctx context.Context, form model.CreateForm) (*model.Movie, error) {
	if fe := form.Validate(); fe != nil {
		return nil, fe
	}

	movie, err := s.store.CreateMovie(ctx, form.Draft())
	if err != nil {
		s.logger.Error().Err(err).Str("title", form.Title).Msg("failed to create movie")
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.logger.Info().Str("movie_id", movie.ID).Msg("movie created")
	return movie, nil
}

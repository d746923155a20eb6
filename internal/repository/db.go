package repository

import (
	"github.com/rs/zerolog"
	"github.com/user/moviecatalog/internal/utils"
)

// Repositories data sources of the application
type Repositories struct {
	Movie *MovieRepository
}

// NewRepositories wires every repository against the movie backend
func NewRepositories(client *utils.HTTPClient, backendURL string, logger zerolog.Logger) (*Repositories, error) {
	movies, err := NewMovieRepository(client, backendURL, logger.With().Str("component", "movie_backend").Logger())
	if err != nil {
		return nil, err
	}

	return &Repositories{
		Movie: movies,
	}, nil
}

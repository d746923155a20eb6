package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/user/moviecatalog/internal/model"
	"github.com/user/moviecatalog/internal/utils"
)

// MovieRepository client of the remote movie REST service.
// Every call is a single attempt; nothing is cached.
type MovieRepository struct {
	client  *utils.HTTPClient
	baseURL string
	logger  zerolog.Logger
}

// NewMovieRepository baseURL is the backend address, e.g. http://localhost:5000
func NewMovieRepository(client *utils.HTTPClient, baseURL string, logger zerolog.Logger) (*MovieRepository, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("backend URL is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid backend URL %q: %w", baseURL, err)
	}

	return &MovieRepository{
		client:  client,
		baseURL: baseURL,
		logger:  logger,
	}, nil
}

// ListMovies returns the whole catalog in backend order
func (r *MovieRepository) ListMovies(ctx context.Context) ([]model.Movie, error) {
	var movies []model.Movie
	if err := r.do(ctx, http.MethodGet, "/api/movies/", nil, &movies); err != nil {
		return nil, err
	}

	r.logger.Debug().Int("count", len(movies)).Msg("listed movies")
	if movies == nil {
		movies = []model.Movie{}
	}
	return movies, nil
}

// GetMovie fetches a single movie
func (r *MovieRepository) GetMovie(ctx context.Context, id string) (*model.Movie, error) {
	var movie model.Movie
	if err := r.do(ctx, http.MethodGet, moviePath(id), nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// CreateMovie posts a draft and returns the stored movie with its new id
func (r *MovieRepository) CreateMovie(ctx context.Context, draft model.Draft) (*model.Movie, error) {
	var movie model.Movie
	if err := r.do(ctx, http.MethodPost, "/api/movies/create", draft, &movie); err != nil {
		return nil, err
	}
	if movie.ID == "" {
		return nil, fmt.Errorf("%w: create response carried no id", ErrNetwork)
	}

	r.logger.Debug().Str("movie_id", movie.ID).Msg("created movie")
	return &movie, nil
}

// UpdateMovie replaces the movie with the draft. Fields absent from the
// draft are not preserved by the backend.
func (r *MovieRepository) UpdateMovie(ctx context.Context, id string, draft model.Draft) (*model.Movie, error) {
	var movie model.Movie
	if err := r.do(ctx, http.MethodPut, moviePath(id), draft, &movie); err != nil {
		return nil, err
	}
	if movie.ID == "" {
		return nil, fmt.Errorf("%w: update response carried no id", ErrNetwork)
	}

	r.logger.Debug().Str("movie_id", movie.ID).Msg("updated movie")
	return &movie, nil
}

// DeleteMovie removes a movie; the response body is ignored
func (r *MovieRepository) DeleteMovie(ctx context.Context, id string) error {
	if err := r.do(ctx, http.MethodDelete, moviePath(id), nil, nil); err != nil {
		return err
	}

	r.logger.Debug().Str("movie_id", id).Msg("deleted movie")
	return nil
}

func moviePath(id string) string {
	return "/api/movies/" + url.PathEscape(id)
}

// do performs the call and maps failures onto the error kinds
func (r *MovieRepository) do(ctx context.Context, method, path string, in, out any) error {
	endpoint := r.baseURL + path

	err := r.client.DoJSON(ctx, method, endpoint, in, out)
	if err == nil {
		return nil
	}

	var statusErr *utils.StatusError
	if errors.As(err, &statusErr) {
		apiErr := &APIError{
			Method:     method,
			URL:        endpoint,
			StatusCode: statusErr.StatusCode,
			Body:       statusErr.Body,
		}
		r.logger.Debug().Err(apiErr).Msg("movie backend refused request")
		return apiErr
	}

	r.logger.Debug().Err(err).Str("method", method).Str("url", endpoint).Msg("movie backend request failed")
	return fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, endpoint, err)
}

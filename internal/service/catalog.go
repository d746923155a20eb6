package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/user/moviecatalog/internal/model"
)

// CatalogFilter narrows the catalog. Empty fields match everything.
type CatalogFilter struct {
	Search string
	Genre  string
	Author string
}

// IsZero reports whether the filter keeps every movie
func (f CatalogFilter) IsZero() bool {
	return f.Search == "" && f.Genre == "" && f.Author == ""
}

// Match title contains Search case-insensitively, genre and author are exact
func (f CatalogFilter) Match(m model.Movie) bool {
	if !strings.Contains(strings.ToLower(m.Title), strings.ToLower(f.Search)) {
		return false
	}
	if f.Genre != "" && m.Genre != f.Genre {
		return false
	}
	if f.Author != "" && m.Author != f.Author {
		return false
	}
	return true
}

// FilterMovies returns the movies matching f, keeping their order
func FilterMovies(movies []model.Movie, f CatalogFilter) []model.Movie {
	out := make([]model.Movie, 0, len(movies))
	for _, m := range movies {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out
}

// DistinctGenres genres in first-seen order
func DistinctGenres(movies []model.Movie) []string {
	return distinct(movies, func(m model.Movie) string { return m.Genre })
}

// DistinctAuthors authors in first-seen order
func DistinctAuthors(movies []model.Movie) []string {
	return distinct(movies, func(m model.Movie) string { return m.Author })
}

func distinct(movies []model.Movie, key func(model.Movie) string) []string {
	seen := make(map[string]struct{}, len(movies))
	out := make([]string, 0)
	for _, m := range movies {
		v := key(m)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// CatalogView state of one catalog activation
type CatalogView struct {
	State  ViewState
	Movies []model.Movie
	Filter CatalogFilter
	Err    error
}

// Visible movies after filtering; empty unless loaded
func (v *CatalogView) Visible() []model.Movie {
	if v.State != StateLoaded {
		return nil
	}
	return FilterMovies(v.Movies, v.Filter)
}

// Genres filter options derived from the fetched list
func (v *CatalogView) Genres() []string {
	return DistinctGenres(v.Movies)
}

// Authors filter options derived from the fetched list
func (v *CatalogView) Authors() []string {
	return DistinctAuthors(v.Movies)
}

// CatalogService catalog view
type CatalogService struct {
	store  MovieStore
	logger zerolog.Logger
}

// NewCatalogService creates the catalog service
func NewCatalogService(store MovieStore, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		store:  store,
		logger: logger,
	}
}

// Activate fetches the catalog once. A failed fetch leaves the view in
// StateError with no movies.
func (s *CatalogService) Activate(ctx context.Context, filter CatalogFilter) *CatalogView {
	view := &CatalogView{State: StateLoading, Filter: filter}

	movies, err := s.store.ListMovies(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load catalog")
		view.State = StateError
		view.Err = err
		return view
	}

	view.Movies = movies
	view.State = StateLoaded
	return view
}

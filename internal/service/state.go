package service

import (
	"context"

	"github.com/user/moviecatalog/internal/model"
)

// ViewState render state of a view. Exactly one applies at a time.
type ViewState int

const (
	StateIdle ViewState = iota
	StateLoading
	StateLoaded
	StateError
)

func (s ViewState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// MovieStore remote movie service as seen by the views
type MovieStore interface {
	ListMovies(ctx context.Context) ([]model.Movie, error)
	GetMovie(ctx context.Context, id string) (*model.Movie, error)
	CreateMovie(ctx context.Context, draft model.Draft) (*model.Movie, error)
	UpdateMovie(ctx context.Context, id string, draft model.Draft) (*model.Movie, error)
	DeleteMovie(ctx context.Context, id string) error
}

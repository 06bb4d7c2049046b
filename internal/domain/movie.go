package domain

import (
	"context"
	"time"
)

type Movie struct {
	ID          string
	Title       string
	Description string
	ReleaseDate time.Time
	PosterUrl   string
}

type MovieFilters struct {
	Pagination
}

type MovieRepository interface {
	GetAll(ctx context.Context, filters MovieFilters) ([]*Movie, *Metadata, error)
	GetById(ctx context.Context, id string) (*Movie, error)
}

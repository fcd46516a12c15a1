package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sidecarr/sidecarr/internal/movie"
	"github.com/sidecarr/sidecarr/internal/tmdb"
)

// MetadataClient is the provider surface the resolver needs.
type MetadataClient interface {
	GetMovie(ctx context.Context, tmdbID int) (*tmdb.MovieResource, error)
	GetMovieByIMDBID(ctx context.Context, imdbID string) (*tmdb.MovieResource, error)
	Search(ctx context.Context, term string, year int) ([]*tmdb.MovieResource, error)
}

// Store is the local movie store consulted before going to the provider.
type Store interface {
	FindByTmdbID(ctx context.Context, tmdbID int) (*movie.Movie, error)
}

// Request carries the identifiers known for a movie to be resolved. Any
// subset may be set; resolution tries them strongest-first.
type Request struct {
	TmdbID int
	ImdbID string
	Title  string
	Year   int
}

// Resolver turns free-form queries and partial movie requests into canonical
// movie records.
type Resolver struct {
	store  Store
	client MetadataClient
	mapper *tmdb.Mapper
	logger *slog.Logger
}

// NewResolver creates a resolver. store may be nil when no local library is
// available.
func NewResolver(store Store, client MetadataClient, mapper *tmdb.Mapper, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{store: store, client: client, mapper: mapper, logger: logger}
}

// Search resolves a raw user query to a list of candidate movies. Explicit
// id queries yield at most one result; a not-found id yields an empty list
// rather than an error.
func (r *Resolver) Search(ctx context.Context, raw string) ([]movie.Movie, error) {
	q, err := Normalize(raw, true)
	if err != nil {
		return nil, err
	}

	if q.HasExplicitID() {
		var res *tmdb.MovieResource
		if q.TMDBID > 0 {
			res, err = r.client.GetMovie(ctx, q.TMDBID)
		} else {
			res, err = r.client.GetMovieByIMDBID(ctx, q.IMDBID)
		}
		if errors.Is(err, tmdb.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		m := r.mapper.Movie(res)
		return []movie.Movie{m}, nil
	}

	resources, err := r.client.Search(ctx, q.Term, q.Year)
	if err != nil {
		return nil, err
	}

	movies := make([]movie.Movie, 0, len(resources))
	for _, res := range resources {
		movies = append(movies, r.mapper.Movie(res))
	}
	return movies, nil
}

// Resolve matches a partial movie request to a single canonical movie. It
// tries the local store, then the provider by id, then by cross-reference
// id, then free-text search taking the first result. Failures are logged and
// swallowed: a nil result means "could not auto-match", never a crash.
func (r *Resolver) Resolve(ctx context.Context, req Request) *movie.Movie {
	m, err := r.resolve(ctx, req)
	if err != nil {
		r.logger.Warn("could not auto-match movie",
			"tmdb_id", req.TmdbID,
			"imdb_id", req.ImdbID,
			"title", req.Title,
			"error", err)
		return nil
	}
	return m
}

func (r *Resolver) resolve(ctx context.Context, req Request) (*movie.Movie, error) {
	if req.TmdbID > 0 {
		if r.store != nil {
			if m, err := r.store.FindByTmdbID(ctx, req.TmdbID); err == nil && m != nil {
				return m, nil
			}
		}
		res, err := r.client.GetMovie(ctx, req.TmdbID)
		if err != nil {
			return nil, err
		}
		m := r.mapper.Movie(res)
		return &m, nil
	}

	if req.ImdbID != "" {
		res, err := r.client.GetMovieByIMDBID(ctx, req.ImdbID)
		if err != nil {
			return nil, err
		}
		m := r.mapper.Movie(res)
		return &m, nil
	}

	if req.Title == "" {
		return nil, fmt.Errorf("empty movie request")
	}

	term := req.Title
	if req.Year > 1900 {
		term = fmt.Sprintf("%s %d", term, req.Year)
	}
	q, err := Normalize(term, false)
	if err != nil {
		return nil, err
	}

	resources, err := r.client.Search(ctx, q.Term, q.Year)
	if err != nil {
		return nil, err
	}
	if len(resources) == 0 {
		return nil, tmdb.ErrNotFound
	}
	m := r.mapper.Movie(resources[0])
	return &m, nil
}

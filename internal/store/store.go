// Package store persists resolved movies in a local SQLite database so bulk
// resolution can skip movies the library already knows.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/sidecarr/sidecarr/internal/movie"
)

const schema = `
CREATE TABLE IF NOT EXISTS movies (
	tmdb_id INTEGER PRIMARY KEY,
	imdb_id TEXT,
	title   TEXT NOT NULL,
	year    INTEGER,
	data    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_movies_imdb_id ON movies(imdb_id);
`

// MovieStore is a SQLite-backed movie library.
type MovieStore struct {
	db *sql.DB
}

// Open opens (and if needed initializes) the database at path.
func Open(path string) (*MovieStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &MovieStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *MovieStore) Close() error {
	return s.db.Close()
}

// Upsert stores a movie, replacing any previous record with the same id.
func (s *MovieStore) Upsert(ctx context.Context, m *movie.Movie) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode movie %d: %w", m.TmdbID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO movies (tmdb_id, imdb_id, title, year, data)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(tmdb_id) DO UPDATE SET
			imdb_id = excluded.imdb_id,
			title   = excluded.title,
			year    = excluded.year,
			data    = excluded.data`,
		m.TmdbID, m.ImdbID, m.Title, m.Year, string(data))
	if err != nil {
		return fmt.Errorf("upsert movie %d: %w", m.TmdbID, err)
	}
	return nil
}

// FindByTmdbID returns the stored movie, or (nil, nil) when unknown.
func (s *MovieStore) FindByTmdbID(ctx context.Context, tmdbID int) (*movie.Movie, error) {
	return s.findBy(ctx, `SELECT data FROM movies WHERE tmdb_id = ?`, tmdbID)
}

// FindByImdbID returns the stored movie for a cross-reference id, or
// (nil, nil) when unknown.
func (s *MovieStore) FindByImdbID(ctx context.Context, imdbID string) (*movie.Movie, error) {
	return s.findBy(ctx, `SELECT data FROM movies WHERE imdb_id = ?`, imdbID)
}

func (s *MovieStore) findBy(ctx context.Context, query string, arg any) (*movie.Movie, error) {
	var data string
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query movie: %w", err)
	}

	var m movie.Movie
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return nil, fmt.Errorf("decode movie: %w", err)
	}
	return &m, nil
}

// All returns every stored movie ordered by title.
func (s *MovieStore) All(ctx context.Context) ([]movie.Movie, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM movies ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	var movies []movie.Movie
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		var m movie.Movie
		if err := json.Unmarshal([]byte(data), &m); err != nil {
			return nil, fmt.Errorf("decode movie: %w", err)
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

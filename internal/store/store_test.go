package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sidecarr/sidecarr/internal/movie"
)

func newTestStore(t *testing.T) *MovieStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "movies.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func storeTestMovie() *movie.Movie {
	return &movie.Movie{
		TmdbID:     27205,
		ImdbID:     "tt1375666",
		Title:      "Inception",
		SortTitle:  "inception",
		CleanTitle: "inception",
		Year:       2010,
		Genres:     []string{"Action", "Science Fiction"},
		Path:       "/library/Inception (2010)",
	}
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Upsert(ctx, storeTestMovie()); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := s.FindByTmdbID(ctx, 27205)
	if err != nil {
		t.Fatalf("FindByTmdbID() error = %v", err)
	}
	if diff := cmp.Diff(storeTestMovie(), got); diff != "" {
		t.Errorf("FindByTmdbID() mismatch (-want +got):\n%s", diff)
	}

	got, err = s.FindByImdbID(ctx, "tt1375666")
	if err != nil {
		t.Fatalf("FindByImdbID() error = %v", err)
	}
	if got == nil || got.TmdbID != 27205 {
		t.Errorf("FindByImdbID() = %+v, want movie 27205", got)
	}
}

func TestStoreMissReturnsNil(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	got, err := s.FindByTmdbID(ctx, 404)
	if err != nil {
		t.Fatalf("FindByTmdbID() error = %v", err)
	}
	if got != nil {
		t.Errorf("FindByTmdbID() = %+v, want nil for an unknown movie", got)
	}

	got, err = s.FindByImdbID(ctx, "tt0000404")
	if err != nil {
		t.Fatalf("FindByImdbID() error = %v", err)
	}
	if got != nil {
		t.Errorf("FindByImdbID() = %+v, want nil for an unknown movie", got)
	}
}

func TestStoreUpsertReplaces(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Upsert(ctx, storeTestMovie()); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	updated := storeTestMovie()
	updated.Title = "Inception (Remastered)"
	updated.Path = "/library/Inception (2010) Remastered"
	if err := s.Upsert(ctx, updated); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	got, err := s.FindByTmdbID(ctx, 27205)
	if err != nil {
		t.Fatalf("FindByTmdbID() error = %v", err)
	}
	if got.Title != updated.Title || got.Path != updated.Path {
		t.Errorf("FindByTmdbID() = (%q, %q), want the updated record", got.Title, got.Path)
	}

	all, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("len(All()) = %d, want 1 after upserting the same movie twice", len(all))
	}
}

func TestStoreAllOrdersByTitle(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	for _, m := range []*movie.Movie{
		{TmdbID: 603, Title: "The Matrix", Year: 1999},
		{TmdbID: 27205, Title: "Inception", Year: 2010},
		{TmdbID: 155, Title: "The Dark Knight", Year: 2008},
	} {
		if err := s.Upsert(ctx, m); err != nil {
			t.Fatalf("Upsert(%d) error = %v", m.TmdbID, err)
		}
	}

	all, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}

	var titles []string
	for _, m := range all {
		titles = append(titles, m.Title)
	}
	want := []string{"Inception", "The Dark Knight", "The Matrix"}
	if diff := cmp.Diff(want, titles); diff != "" {
		t.Errorf("All() order mismatch (-want +got):\n%s", diff)
	}
}

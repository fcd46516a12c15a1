package metadata

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/sidecarr/sidecarr/internal/movie"
)

// imageDoer serves canned image bytes for any URL it knows about.
type imageDoer struct {
	images map[string][]byte
}

func (d *imageDoer) Do(req *http.Request) (*http.Response, error) {
	body, ok := d.images[req.URL.String()]
	if !ok {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(bytes.NewReader(nil)),
		}, nil
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader(body)),
	}, nil
}

func writerResult(dir string) Result {
	return Result{
		Movie: &movie.Movie{TmdbID: 27205, Title: "Inception", Path: dir},
		Description: &MetadataFileResult{
			RelativePath: "movie.nfo",
			Contents:     `<movie><uniqueid type="tmdb">27205</uniqueid></movie>`,
		},
		Images: []ImageFileResult{
			{RelativePath: "poster.jpg", URL: "https://img/original/p.jpg"},
		},
	}
}

func TestWriterWrite(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	doer := &imageDoer{images: map[string][]byte{
		"https://img/original/p.jpg": []byte("poster-bytes"),
	}}
	w := NewWriter(NewXbmcConsumer(XbmcSettings{}, nil, fakeDetector{ours: true}, nil), doer, nil)

	if err := w.Write(context.Background(), writerResult(dir)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	nfo, err := os.ReadFile(filepath.Join(dir, "movie.nfo"))
	if err != nil {
		t.Fatalf("read description: %v", err)
	}
	want := `<movie><uniqueid type="tmdb">27205</uniqueid></movie>` + "\n"
	if string(nfo) != want {
		t.Errorf("description = %q, want %q", nfo, want)
	}

	poster, err := os.ReadFile(filepath.Join(dir, "poster.jpg"))
	if err != nil {
		t.Fatalf("read poster: %v", err)
	}
	if string(poster) != "poster-bytes" {
		t.Errorf("poster = %q, want %q", poster, "poster-bytes")
	}
}

func TestWriterLeavesForeignDescriptionAlone(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	foreign := "<movie><title>Inception</title></movie>\n"
	if err := os.WriteFile(filepath.Join(dir, "movie.nfo"), []byte(foreign), 0o644); err != nil {
		t.Fatal(err)
	}

	w := NewWriter(NewXbmcConsumer(XbmcSettings{}, nil, fakeDetector{ours: false}, nil), &imageDoer{}, nil)

	result := writerResult(dir)
	result.Images = nil
	if err := w.Write(context.Background(), result); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "movie.nfo"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != foreign {
		t.Errorf("foreign description was overwritten: %q", got)
	}
}

func TestWriterOverwritesOwnDescription(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	stale := `<movie><uniqueid type="tmdb">27205</uniqueid><title>Old</title></movie>` + "\n"
	if err := os.WriteFile(filepath.Join(dir, "movie.nfo"), []byte(stale), 0o644); err != nil {
		t.Fatal(err)
	}

	w := NewWriter(NewXbmcConsumer(XbmcSettings{}, nil, fakeDetector{ours: true}, nil), &imageDoer{}, nil)

	result := writerResult(dir)
	result.Images = nil
	if err := w.Write(context.Background(), result); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "movie.nfo"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) == stale {
		t.Error("stale description was not refreshed")
	}
}

func TestWriterImageDownloadFailure(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	w := NewWriter(NewXbmcConsumer(XbmcSettings{}, nil, fakeDetector{ours: true}, nil), &imageDoer{}, nil)

	result := writerResult(dir)
	result.Description = nil
	if err := w.Write(context.Background(), result); err == nil {
		t.Error("Write() error = nil, want download failure")
	}
	if _, err := os.Stat(filepath.Join(dir, "poster.jpg")); !os.IsNotExist(err) {
		t.Error("poster file exists despite the failed download")
	}
}

func TestWriterPropagatesResultError(t *testing.T) {
	t.Parallel()
	w := NewWriter(NewXbmcConsumer(XbmcSettings{}, nil, fakeDetector{ours: true}, nil), &imageDoer{}, nil)

	result := writerResult(t.TempDir())
	result.Err = os.ErrDeadlineExceeded
	if err := w.Write(context.Background(), result); err != result.Err {
		t.Errorf("Write() error = %v, want the result error", err)
	}
}

func TestWriterDescriptionInSubdirectory(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	w := NewWriter(NewXbmcConsumer(XbmcSettings{}, nil, fakeDetector{ours: true}, nil), &imageDoer{}, nil)

	result := writerResult(dir)
	result.Images = nil
	result.Description.RelativePath = "discs/movie.nfo"
	if err := w.Write(context.Background(), result); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "discs", "movie.nfo")); err != nil {
		t.Errorf("description missing from subdirectory: %v", err)
	}
}

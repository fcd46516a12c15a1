package metadata

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestXMLDetector(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		contents string
		want     bool
	}{
		{
			name: "our document",
			contents: `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<movie>
  <title>Inception</title>
  <uniqueid type="tmdb" default="true">27205</uniqueid>
</movie>`,
			want: true,
		},
		{
			name: "trailing junk after the document",
			contents: `<movie><uniqueid type="tmdb">27205</uniqueid></movie>
https://www.themoviedb.org/movie/27205`,
			want: true,
		},
		{
			name:     "foreign scraper document",
			contents: `<movie><title>Inception</title><id>tt1375666</id></movie>`,
			want:     false,
		},
		{
			name:     "imdb only uniqueid",
			contents: `<movie><uniqueid type="imdb">tt1375666</uniqueid></movie>`,
			want:     false,
		},
		{
			name:     "different root element",
			contents: `<tvshow><uniqueid type="tmdb">1399</uniqueid></tvshow>`,
			want:     false,
		},
		{
			name:     "not xml at all",
			contents: "plot summary written by hand\n",
			want:     false,
		},
		{
			name:     "empty file",
			contents: "",
			want:     false,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			path := writeTestFile(t, "movie.nfo", test.contents)
			if got := (XMLDetector{}).IsMetadataNfo(path); got != test.want {
				t.Errorf("IsMetadataNfo() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestXMLDetectorMissingFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "does-not-exist.nfo")
	if (XMLDetector{}).IsMetadataNfo(path) {
		t.Error("IsMetadataNfo() = true for a missing file")
	}
}

package metadata

import (
	"context"
	"time"

	"github.com/sidecarr/sidecarr/internal/mediainfo"
	"github.com/sidecarr/sidecarr/internal/movie"
)

// MetadataType classifies a sidecar file claimed by a consumer.
type MetadataType string

const (
	TypeMovieMetadata MetadataType = "movie-metadata"
	TypeMovieImage    MetadataType = "movie-image"
)

// MovieFile describes a local media file within a movie's folder.
type MovieFile struct {
	// MovieDir is the absolute path of the movie's folder.
	MovieDir string
	// RelativePath is the media file's path relative to MovieDir.
	RelativePath string
	// MediaInfo is the probed technical metadata, nil when unavailable.
	MediaInfo *mediainfo.MediaInfo
	// DateAdded is when the file entered the library.
	DateAdded time.Time
}

// MetadataFile is a sidecar file on disk recognized as belonging to a
// consumer.
type MetadataFile struct {
	MovieTmdbID  int
	Consumer     string
	RelativePath string
	Type         MetadataType
}

// MetadataFileResult is a description document to be written to disk.
type MetadataFileResult struct {
	RelativePath string
	Contents     string
}

// ImageFileResult is an image sidecar to be fetched from URL and written to
// RelativePath.
type ImageFileResult struct {
	RelativePath string
	URL          string
}

// Consumer produces sidecar metadata in one media-center convention. A nil
// MetadataFileResult or empty image list means the consumer has nothing to
// produce under its current settings, not an error.
type Consumer interface {
	Name() string
	MovieMetadata(ctx context.Context, m *movie.Movie, file *MovieFile) (*MetadataFileResult, error)
	MovieImages(ctx context.Context, m *movie.Movie, file *MovieFile) ([]ImageFileResult, error)
	FindMetadataFile(m *movie.Movie, path string) *MetadataFile
	FilenameAfterMove(m *movie.Movie, file *MovieFile, meta *MetadataFile) string
}

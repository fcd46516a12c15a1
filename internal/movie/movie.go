// Package movie defines the canonical movie model shared by the resolver,
// the provider client and the metadata consumers. The shapes here are
// provider-independent; mapping from raw provider resources lives with the
// client.
package movie

import (
	"strings"
	"time"
)

// CoverType classifies an image attached to a movie or credit.
type CoverType string

const (
	CoverPoster   CoverType = "poster"
	CoverFanart   CoverType = "fanart"
	CoverHeadshot CoverType = "headshot"
	CoverUnknown  CoverType = "unknown"
)

// ParseCoverType maps a provider cover-type string to a CoverType. Unknown
// strings map to CoverUnknown, never an error.
func ParseCoverType(s string) CoverType {
	switch strings.ToLower(s) {
	case "poster":
		return CoverPoster
	case "fanart", "backdrop":
		return CoverFanart
	case "headshot", "profile":
		return CoverHeadshot
	default:
		return CoverUnknown
	}
}

// Image is a typed cover image with an absolute URL.
type Image struct {
	URL       string
	CoverType CoverType
}

// Ratings summarizes the provider vote data for a movie.
type Ratings struct {
	Votes int
	Value float64
}

// Language pairs an ISO 639-1 code with its English display name.
type Language struct {
	Code string
	Name string
}

// Collection references the parent collection a movie belongs to.
type Collection struct {
	TmdbID int
	Name   string
}

// AlternativeTitle is a localized or regional alternate title.
type AlternativeTitle struct {
	Title      string
	CleanTitle string
	Language   Language
}

// Translation is a localized title and overview pair.
type Translation struct {
	Title      string
	Overview   string
	CleanTitle string
	Language   Language
}

// Movie is the canonical, provider-independent representation of a movie.
// TmdbID is the stable identity key; ImdbID is a secondary lookup key only.
type Movie struct {
	TmdbID        int
	ImdbID        string
	Title         string
	OriginalTitle string
	SortTitle     string
	CleanTitle    string
	Overview      string
	Tagline       string
	Website       string

	AlternativeTitles []AlternativeTitle
	Translations      []Translation
	OriginalLanguage  Language

	Runtime   int // minutes, 0 when unknown
	Genres    []string
	Countries []string
	Studios   []string

	InCinemas       *time.Time
	PhysicalRelease *time.Time
	DigitalRelease  *time.Time
	Year            int
	SecondaryYear   *int

	Certification    string
	Ratings          Ratings
	Images           []Image
	Collection       *Collection
	Recommendations  []int
	YouTubeTrailerID string

	Credits []Credit

	// Path is the movie's folder in the local library, empty when the
	// movie is not in the library.
	Path string
}

// Status derives the release status from the movie's release dates at the
// given instant. It is computed, never stored.
func (m *Movie) Status(now time.Time) ReleaseStatus {
	return StatusAt(now, m.InCinemas, m.PhysicalRelease, m.DigitalRelease)
}

// Poster returns the first poster image, if any.
func (m *Movie) Poster() (Image, bool) {
	return m.imageOfType(CoverPoster)
}

// Fanart returns the first fanart image, if any.
func (m *Movie) Fanart() (Image, bool) {
	return m.imageOfType(CoverFanart)
}

func (m *Movie) imageOfType(t CoverType) (Image, bool) {
	for _, img := range m.Images {
		if img.CoverType == t {
			return img, true
		}
	}
	return Image{}, false
}

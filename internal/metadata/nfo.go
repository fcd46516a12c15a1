package metadata

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// The NFO schema below is a compatibility contract with Kodi and Emby.
// Element names, nesting and order must not change.

type nfoMovie struct {
	XMLName       xml.Name      `xml:"movie"`
	Title         string        `xml:"title"`
	OriginalTitle string        `xml:"originaltitle"`
	SortTitle     string        `xml:"sorttitle"`
	Ratings       *nfoRatings   `xml:"ratings,omitempty"`
	Rating        float64       `xml:"rating"`
	Top250        string        `xml:"top250"`
	Outline       string        `xml:"outline"`
	Plot          string        `xml:"plot"`
	Tagline       string        `xml:"tagline"`
	Runtime       int           `xml:"runtime"`
	Thumbs        []nfoThumb    `xml:"thumb"`
	Fanart        *nfoFanart    `xml:"fanart,omitempty"`
	MPAA          string        `xml:"mpaa,omitempty"`
	TmdbUniqueID  nfoUniqueID   `xml:"uniqueid"`
	TmdbID        int           `xml:"tmdbid"`
	ImdbUniqueID  *nfoUniqueID  `xml:"uniqueid,omitempty"`
	ImdbID        string        `xml:"imdbid,omitempty"`
	Genres        []string      `xml:"genre"`
	Countries     []string      `xml:"country"`
	CollectionID  *int          `xml:"collectionnumber,omitempty"`
	Set           *nfoSet       `xml:"set,omitempty"`
	Credits       []string      `xml:"credits"`
	Directors     []string      `xml:"director"`
	ReleaseDate   string        `xml:"releasedate,omitempty"`
	Premiered     string        `xml:"premiered,omitempty"`
	Year          int           `xml:"year,omitempty"`
	Status        string        `xml:"status"`
	Studios       []string      `xml:"studio"`
	Trailer       string        `xml:"trailer,omitempty"`
	FileInfo      *nfoFileInfo  `xml:"fileinfo,omitempty"`
	Actors        []nfoActor    `xml:"actor"`
	DateAdded     string        `xml:"dateadded"`
}

type nfoRatings struct {
	Rating nfoRating `xml:"rating"`
}

type nfoRating struct {
	Name    string  `xml:"name,attr"`
	Max     string  `xml:"max,attr"`
	Default string  `xml:"default,attr"`
	Value   float64 `xml:"value"`
	Votes   int     `xml:"votes"`
}

type nfoThumb struct {
	Aspect  string `xml:"aspect,attr,omitempty"`
	Preview string `xml:"preview,attr,omitempty"`
	URL     string `xml:",chardata"`
}

type nfoFanart struct {
	Thumbs []nfoThumb `xml:"thumb"`
}

type nfoUniqueID struct {
	Type    string `xml:"type,attr"`
	Default string `xml:"default,attr,omitempty"`
	Value   string `xml:",chardata"`
}

type nfoSet struct {
	TmdbColID int    `xml:"tmdbcolid,attr"`
	Name      string `xml:"name"`
	Overview  string `xml:"overview"`
}

type nfoFileInfo struct {
	StreamDetails nfoStreamDetails `xml:"streamdetails"`
}

type nfoStreamDetails struct {
	Video    nfoVideo     `xml:"video"`
	Audio    nfoAudio     `xml:"audio"`
	Subtitle *nfoSubtitle `xml:"subtitle,omitempty"`
}

type nfoVideo struct {
	Aspect            string  `xml:"aspect"`
	Bitrate           int     `xml:"bitrate"`
	Codec             string  `xml:"codec"`
	Framerate         float64 `xml:"framerate"`
	Height            int     `xml:"height"`
	ScanType          string  `xml:"scantype"`
	Width             int     `xml:"width"`
	Duration          string  `xml:"duration,omitempty"`
	DurationInSeconds string  `xml:"durationinseconds,omitempty"`
}

type nfoAudio struct {
	Bitrate  int    `xml:"bitrate"`
	Channels int    `xml:"channels"`
	Codec    string `xml:"codec"`
	Language string `xml:"language"`
}

type nfoSubtitle struct {
	Language string `xml:"language"`
}

type nfoActor struct {
	Name  string `xml:"name"`
	Role  string `xml:"role"`
	Order int    `xml:"order"`
	Thumb string `xml:"thumb,omitempty"`
}

const nfoHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// renderNFO serializes the document with the XML header media centers
// expect. Output is deterministic for identical input.
func renderNFO(doc *nfoMovie) (string, error) {
	b, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal nfo: %w", err)
	}
	return nfoHeader + string(b) + "\n", nil
}

// outlineOf derives a one-sentence outline: the overview text up to and
// including the first ". ", or the whole overview when there is none.
func outlineOf(overview string) string {
	if i := strings.Index(overview, ". "); i > 0 {
		return overview[:i+1]
	}
	return overview
}

// aspectRatio renders width/height as the decimal aspect Kodi displays.
func aspectRatio(width, height int) string {
	if height == 0 {
		return ""
	}
	return fmt.Sprintf("%.2f", float64(width)/float64(height))
}

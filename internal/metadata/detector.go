package metadata

import (
	"encoding/xml"
	"io"
	"os"
)

// NfoDetector decides whether an .nfo file on disk was produced by this
// pipeline, so a same-named file written by another metadata manager is
// never adopted or overwritten.
type NfoDetector interface {
	IsMetadataNfo(path string) bool
}

// XMLDetector recognizes our documents by their shape: a <movie> root
// carrying a tmdb-typed uniqueid element.
type XMLDetector struct{}

// probe holds just the fields the detector inspects.
type nfoProbe struct {
	XMLName   xml.Name `xml:"movie"`
	UniqueIDs []struct {
		Type string `xml:"type,attr"`
	} `xml:"uniqueid"`
}

func (XMLDetector) IsMetadataNfo(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	// Kodi tolerates trailing junk after the document; cap what we read.
	var doc nfoProbe
	if err := xml.NewDecoder(io.LimitReader(f, 1<<20)).Decode(&doc); err != nil {
		return false
	}

	for _, id := range doc.UniqueIDs {
		if id.Type == "tmdb" {
			return true
		}
	}
	return false
}

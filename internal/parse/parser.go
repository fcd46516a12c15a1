// Package parse extracts movie titles, years and embedded identifiers from
// noisy release-style file names.
package parse

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Result is a structured parse of a raw movie file or folder name.
type Result struct {
	Title  string
	Year   int
	ImdbID string
}

// MovieTitle parses a raw file or folder name into a cleaned title with an
// optional year and embedded IMDb id. It returns nil when nothing usable
// could be extracted.
func MovieTitle(name string) *Result {
	if name == "" {
		return nil
	}

	working := name
	if IsVideo(name) || IsNFO(name) {
		working = strings.TrimSuffix(name, filepath.Ext(name))
	}

	imdbID := ""
	if m := imdbIDRe.FindStringSubmatch(working); m != nil {
		imdbID = m[1]
		working = strings.Replace(working, m[1], "", 1)
	}

	title, year := ExtractNameAndYear(working)
	if title == "" && year == 0 && imdbID == "" {
		return nil
	}

	return &Result{Title: title, Year: year, ImdbID: imdbID}
}

// ExtractNameAndYear cleans a movie name and extracts the title and year
// components. Everything after the first year occurrence is discarded since
// release names put quality tags behind the year.
func ExtractNameAndYear(name string) (string, int) {
	if name == "" {
		return "", 0
	}

	formatted := name
	year := 0

	if m := yearRe.FindStringSubmatch(formatted); len(m) > 1 {
		year, _ = strconv.Atoi(m[1])

		if idx := strings.Index(formatted, m[1]); idx != -1 {
			formatted = formatted[:idx]
			formatted = strings.TrimRight(formatted, " ([{-_")
		}
	}

	// Replace separators with spaces
	formatted = strings.ReplaceAll(formatted, ".", " ")
	formatted = strings.ReplaceAll(formatted, "-", " ")
	formatted = strings.ReplaceAll(formatted, "_", " ")

	// Remove common encoding tags
	formatted = encodingTagsRe.ReplaceAllString(formatted, "")

	// Clean up extra spaces
	formatted = strings.TrimSpace(strings.Join(strings.Fields(formatted), " "))

	return formatted, year
}

// CleanName performs basic cleaning on a media name.
func CleanName(name string) string {
	if name == "" {
		return ""
	}

	result := emptyBracketsRe.ReplaceAllString(name, "")
	result = strings.Join(strings.Fields(result), " ")
	result = strings.Trim(result, "-_–—|: ")

	return strings.TrimSpace(result)
}

package search

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sidecarr/sidecarr/internal/parse"
)

// ErrInvalidQuery reports a query whose explicit id prefix carries an empty
// or malformed payload.
var ErrInvalidQuery = errors.New("invalid query")

// Query is a normalized search request. Exactly one of TMDBID, IMDBID, or
// Term is populated. Queries are ephemeral and never stored.
type Query struct {
	Raw    string
	Term   string
	Year   int
	TMDBID int
	IMDBID string
}

// HasExplicitID reports whether the query names a movie directly rather than
// through free-text search.
func (q Query) HasExplicitID() bool {
	return q.TMDBID > 0 || q.IMDBID != ""
}

var separatorRuns = regexp.MustCompile(`[\s_.]+`)

// Normalize turns a raw user query into a structured Query. Queries prefixed
// with imdb:/imdbid: or tmdb:/tmdbid: resolve to explicit ids; anything else
// becomes a free-text term. When parseTitle is set the term is additionally
// run through the filename parser to split off an embedded year.
func Normalize(raw string, parseTitle bool) (Query, error) {
	q := Query{Raw: raw}
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)

	if rest, ok := cutPrefix(lower, trimmed, "imdbid:", "imdb:"); ok {
		if rest == "" || strings.ContainsAny(rest, " \t") {
			return Query{}, fmt.Errorf("%w: imdb id %q", ErrInvalidQuery, rest)
		}
		q.IMDBID = rest
		return q, nil
	}

	if rest, ok := cutPrefix(lower, trimmed, "tmdbid:", "tmdb:"); ok {
		id, err := strconv.Atoi(rest)
		if err != nil || id < 0 {
			return Query{}, fmt.Errorf("%w: tmdb id %q", ErrInvalidQuery, rest)
		}
		q.TMDBID = id
		return q, nil
	}

	term := strings.ReplaceAll(lower, ".", " ")
	if parseTitle {
		if parsed := parse.MovieTitle(trimmed); parsed != nil && !strings.EqualFold(parsed.Title, trimmed) {
			term = strings.ToLower(parsed.Title)
			q.Year = parsed.Year
		}
	}

	term = stripTrailingArticle(strings.TrimSpace(term))
	q.Term = separatorRuns.ReplaceAllString(term, "+")
	return q, nil
}

// cutPrefix tries each prefix against the lower-cased query and returns the
// trimmed remainder of the original-cased string.
func cutPrefix(lower, original string, prefixes ...string) (string, bool) {
	for _, p := range prefixes {
		if strings.HasPrefix(lower, p) {
			return strings.TrimSpace(original[len(p):]), true
		}
	}
	return "", false
}

// stripTrailingArticle removes a trailing ", the" so the provider ranks
// "Movie, The" the same as "The Movie".
func stripTrailingArticle(term string) string {
	lower := strings.ToLower(term)
	for _, suffix := range []string{", the", ",the"} {
		if strings.HasSuffix(lower, suffix) {
			return strings.TrimSpace(term[:len(term)-len(suffix)])
		}
	}
	return term
}

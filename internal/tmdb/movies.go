package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// GetMovie fetches the full movie resource for a TMDB id, including the
// appended alternative-title, credit, image, release-date, video, translation
// and recommendation blocks.
func (c *Client) GetMovie(ctx context.Context, tmdbID int) (*MovieResource, error) {
	cacheKey := fmt.Sprintf("movie_%d_%s", tmdbID, c.language)
	if c.cache != nil {
		if cached, found := c.cache.Get(cacheKey); found {
			if res, ok := cached.(*MovieResource); ok {
				return res, nil
			}
		}
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)
	params.Set("append_to_response", appendBlocks)

	endpoint := fmt.Sprintf("%s/movie/%d?%s", c.baseURL, tmdbID, params.Encode())

	var res MovieResource
	if err := c.getJSON(ctx, endpoint, &res); err != nil {
		return nil, fmt.Errorf("get movie %d: %w", tmdbID, err)
	}
	if res.ID == 0 {
		return nil, fmt.Errorf("get movie %d: %w: missing id", tmdbID, ErrMalformedResponse)
	}

	if c.cache != nil {
		c.cache.Set(cacheKey, &res, gocache.DefaultExpiration)
	}
	return &res, nil
}

// GetMovieByIMDBID resolves an IMDb id through the provider's external-id
// index and fetches the matching movie resource.
func (c *Client) GetMovieByIMDBID(ctx context.Context, imdbID string) (*MovieResource, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("external_source", "imdb_id")

	endpoint := fmt.Sprintf("%s/find/%s?%s", c.baseURL, url.PathEscape(imdbID), params.Encode())

	var found findResult
	if err := c.getJSON(ctx, endpoint, &found); err != nil {
		return nil, fmt.Errorf("find by imdb id %s: %w", imdbID, err)
	}
	if len(found.MovieResults) == 0 {
		return nil, fmt.Errorf("find by imdb id %s: %w", imdbID, ErrNotFound)
	}

	return c.GetMovie(ctx, found.MovieResults[0].ID)
}

// GetBulk fetches movie resources sequentially for a list of ids. Ids the
// provider does not know are skipped so a partial result is still useful; a
// transport or payload failure aborts the whole batch.
func (c *Client) GetBulk(ctx context.Context, tmdbIDs []int) ([]*MovieResource, error) {
	movies := make([]*MovieResource, 0, len(tmdbIDs))
	for _, id := range tmdbIDs {
		res, err := c.GetMovie(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		movies = append(movies, res)
	}
	return movies, nil
}

// ChangeWindowStart computes the provider-side start of a changed-since
// window: the requested time is moved 15 minutes earlier to tolerate clock
// skew, then floored to the start of its hour so repeated polls stay
// cache-friendly on the provider side.
func ChangeWindowStart(since time.Time) time.Time {
	return since.Add(-15 * time.Minute).Truncate(time.Hour)
}

// GetChangedSince returns the deduplicated set of movie ids the provider
// reports as changed since the given time.
func (c *Client) GetChangedSince(ctx context.Context, since time.Time) (map[int]struct{}, error) {
	start := ChangeWindowStart(since)

	changed := make(map[int]struct{})
	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("api_key", c.apiKey)
		params.Set("start_date", start.Format("2006-01-02"))
		params.Set("page", strconv.Itoa(page))

		endpoint := fmt.Sprintf("%s/movie/changes?%s", c.baseURL, params.Encode())

		var res changesPage
		if err := c.getJSON(ctx, endpoint, &res); err != nil {
			return nil, fmt.Errorf("get changed movies since %s: %w", start.Format(time.RFC3339), err)
		}

		for _, r := range res.Results {
			changed[r.ID] = struct{}{}
		}

		if res.TotalPages == 0 || page >= res.TotalPages {
			break
		}
	}

	return changed, nil
}

// Search runs a free-text movie search and bulk-fetches the full resource for
// every hit, in provider relevance order. Transport and payload failures are
// wrapped in a SearchError carrying the query term.
func (c *Client) Search(ctx context.Context, term string, year int) ([]*MovieResource, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)
	params.Set("query", term)
	if year > 0 {
		params.Set("year", strconv.Itoa(year))
	}

	endpoint := fmt.Sprintf("%s/search/movie?%s", c.baseURL, params.Encode())

	var res searchPage
	if err := c.getJSON(ctx, endpoint, &res); err != nil {
		return nil, &SearchError{Query: term, Err: err}
	}

	ids := make([]int, 0, len(res.Results))
	for _, r := range res.Results {
		ids = append(ids, r.ID)
	}

	movies, err := c.GetBulk(ctx, ids)
	if err != nil {
		return nil, &SearchError{Query: term, Err: err}
	}
	return movies, nil
}

// GetImages fetches the poster and backdrop images for a movie in the primary
// language, falling back through the given comma-separated language list.
func (c *Client) GetImages(ctx context.Context, tmdbID int, primaryLanguage, fallbackLanguages string) (*ImagesResource, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	if primaryLanguage != "" {
		params.Set("language", primaryLanguage)
	}
	if fallbackLanguages != "" {
		params.Set("include_image_language", fallbackLanguages)
	}

	endpoint := fmt.Sprintf("%s/movie/%d/images?%s", c.baseURL, tmdbID, params.Encode())

	var res ImagesResource
	if err := c.getJSON(ctx, endpoint, &res); err != nil {
		return nil, fmt.Errorf("get images for movie %d: %w", tmdbID, err)
	}
	return &res, nil
}

// GetCollection fetches a movie collection with its localized overview.
func (c *Client) GetCollection(ctx context.Context, collectionID int, language string) (*CollectionResource, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	if language != "" {
		params.Set("language", language)
	}

	endpoint := fmt.Sprintf("%s/collection/%d?%s", c.baseURL, collectionID, params.Encode())

	var res CollectionResource
	if err := c.getJSON(ctx, endpoint, &res); err != nil {
		return nil, fmt.Errorf("get collection %d: %w", collectionID, err)
	}
	return &res, nil
}

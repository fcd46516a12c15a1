package tmdb

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/sidecarr/sidecarr/internal/movie"
)

// Mapper converts raw provider resources into the canonical movie model. It
// is a pure translation layer: no network access, no clock reads. Release
// status is derived by the movie model itself when asked.
type Mapper struct {
	certificationCountry string
	fallbackLanguage     string
	imageBaseURL         string
}

// NewMapper creates a mapper. certificationCountry is the ISO 3166-1 country
// whose certification is surfaced (e.g. "US"); fallbackLanguage is the ISO
// 639-1 code used when a resource carries an unrecognized language.
func NewMapper(certificationCountry, fallbackLanguage string) *Mapper {
	if fallbackLanguage == "" {
		fallbackLanguage = "en"
	}
	return &Mapper{
		certificationCountry: certificationCountry,
		fallbackLanguage:     fallbackLanguage,
		imageBaseURL:         defaultImageBaseURL,
	}
}

// Movie maps a provider movie resource to the canonical model.
func (m *Mapper) Movie(res *MovieResource) movie.Movie {
	mv := movie.Movie{
		TmdbID:           res.ID,
		ImdbID:           res.ImdbID,
		Title:            res.Title,
		OriginalTitle:    res.OriginalTitle,
		SortTitle:        movie.SortTitleOf(res.Title),
		CleanTitle:       movie.CleanTitleOf(res.Title),
		Overview:         res.Overview,
		Tagline:          res.Tagline,
		Website:          res.Homepage,
		OriginalLanguage: m.language(res.OriginalLanguage),
		Runtime:          res.Runtime,
		Ratings:          movie.Ratings{Votes: res.VoteCount, Value: res.VoteAverage},
	}

	for _, g := range res.Genres {
		mv.Genres = append(mv.Genres, g.Name)
	}
	for _, c := range res.ProductionCountries {
		mv.Countries = append(mv.Countries, c.Name)
	}
	for _, c := range res.ProductionCompanies {
		mv.Studios = append(mv.Studios, c.Name)
	}

	dates := m.releaseDates(res)
	mv.InCinemas = dates.theatrical
	mv.PhysicalRelease = dates.physical
	mv.DigitalRelease = dates.digital
	mv.Certification = dates.certification

	if dates.theatrical != nil {
		mv.Year = dates.theatrical.Year()
	} else if t, ok := parseDate(res.ReleaseDate); ok {
		mv.Year = t.Year()
	}

	// A premiere year diverging from the primary year becomes the secondary
	// year, so a festival run a year early still matches release naming.
	if dates.premiere != nil && mv.Year != 0 && dates.premiere.Year() != mv.Year {
		year := dates.premiere.Year()
		mv.SecondaryYear = &year
	}

	mv.Images = m.movieImages(res)

	if res.AlternativeTitles != nil {
		for _, t := range res.AlternativeTitles.Titles {
			mv.AlternativeTitles = append(mv.AlternativeTitles, movie.AlternativeTitle{
				Title:      t.Title,
				CleanTitle: movie.CleanTitleOf(t.Title),
				Language:   m.language(t.Iso3166_1),
			})
		}
	}

	if res.Translations != nil {
		for _, t := range res.Translations.Translations {
			mv.Translations = append(mv.Translations, movie.Translation{
				Title:      t.Data.Title,
				Overview:   t.Data.Overview,
				CleanTitle: movie.CleanTitleOf(t.Data.Title),
				Language:   m.language(t.Iso639_1),
			})
		}
	}

	if res.BelongsToCollection != nil {
		mv.Collection = &movie.Collection{
			TmdbID: res.BelongsToCollection.ID,
			Name:   res.BelongsToCollection.Name,
		}
	}

	if res.Recommendations != nil {
		for _, r := range res.Recommendations.Results {
			mv.Recommendations = append(mv.Recommendations, r.ID)
		}
	}

	mv.YouTubeTrailerID = youtubeTrailerKey(res)
	mv.Credits = m.credits(res)

	return mv
}

// credits maps the cast and crew lists, discarding entries without a name.
func (m *Mapper) credits(res *MovieResource) []movie.Credit {
	if res.Credits == nil {
		return nil
	}

	credits := make([]movie.Credit, 0, len(res.Credits.Cast)+len(res.Credits.Crew))

	for _, c := range res.Credits.Cast {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		credits = append(credits, movie.Credit{
			Name:         c.Name,
			Type:         movie.CreditCast,
			Character:    c.Character,
			Order:        c.Order,
			CreditTmdbID: c.CreditID,
			PersonTmdbID: c.ID,
			Images:       m.headshot(c.ProfilePath),
		})
	}

	for _, c := range res.Credits.Crew {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		credits = append(credits, movie.Credit{
			Name:         c.Name,
			Type:         movie.CreditCrew,
			Department:   c.Department,
			Job:          c.Job,
			CreditTmdbID: c.CreditID,
			PersonTmdbID: c.ID,
			Images:       m.headshot(c.ProfilePath),
		})
	}

	return credits
}

func (m *Mapper) headshot(profilePath string) []movie.Image {
	if profilePath == "" {
		return nil
	}
	return []movie.Image{{
		URL:       m.absoluteImageURL(profilePath),
		CoverType: movie.CoverHeadshot,
	}}
}

func (m *Mapper) movieImages(res *MovieResource) []movie.Image {
	var images []movie.Image
	if res.PosterPath != "" {
		images = append(images, movie.Image{
			URL:       m.absoluteImageURL(res.PosterPath),
			CoverType: movie.ParseCoverType("poster"),
		})
	}
	if res.BackdropPath != "" {
		images = append(images, movie.Image{
			URL:       m.absoluteImageURL(res.BackdropPath),
			CoverType: movie.ParseCoverType("fanart"),
		})
	}
	return images
}

// absoluteImageURL rewrites a provider-relative image path to an absolute URL
// in the original size segment.
func (m *Mapper) absoluteImageURL(path string) string {
	return m.imageBaseURL + "/original" + path
}

// language resolves an ISO language code to the canonical language value,
// falling back to the configured language when the code is unrecognized.
func (m *Mapper) language(code string) movie.Language {
	code = strings.ToLower(strings.TrimSpace(code))
	tag, err := language.Parse(code)
	if err != nil || code == "" {
		code = m.fallbackLanguage
		tag, err = language.Parse(code)
		if err != nil {
			tag = language.English
			code = "en"
		}
	}
	return movie.Language{Code: code, Name: display.English.Languages().Name(tag)}
}

type releaseDates struct {
	theatrical      *time.Time
	physical        *time.Time
	digital         *time.Time
	premiere        *time.Time
	certification   string
	usCertification string
}

// releaseDates reconciles the per-country release-date lists into single
// theatrical, physical, digital and premiere dates (earliest of each kind)
// plus the certification for the configured country.
func (m *Mapper) releaseDates(res *MovieResource) releaseDates {
	var dates releaseDates
	if res.ReleaseDates == nil {
		return dates
	}

	for _, country := range res.ReleaseDates.Results {
		for _, rd := range country.ReleaseDates {
			t, ok := parseDate(rd.ReleaseDate)
			if !ok {
				continue
			}
			switch rd.Type {
			case releaseTheatrical, releaseTheatricalL:
				dates.theatrical = earliest(dates.theatrical, t)
			case releasePhysical:
				dates.physical = earliest(dates.physical, t)
			case releaseDigital:
				dates.digital = earliest(dates.digital, t)
			case releasePremiere:
				dates.premiere = earliest(dates.premiere, t)
			}

			if dates.certification == "" &&
				strings.EqualFold(country.Iso3166_1, m.certificationCountry) &&
				rd.Certification != "" {
				dates.certification = rd.Certification
			}
			if dates.usCertification == "" &&
				strings.EqualFold(country.Iso3166_1, "US") &&
				rd.Certification != "" {
				dates.usCertification = rd.Certification
			}
		}
	}

	// No certification for the configured country falls back to the US one.
	if dates.certification == "" {
		dates.certification = dates.usCertification
	}

	return dates
}

func earliest(current *time.Time, candidate time.Time) *time.Time {
	if current == nil || candidate.Before(*current) {
		return &candidate
	}
	return current
}

func youtubeTrailerKey(res *MovieResource) string {
	if res.Videos == nil {
		return ""
	}
	for _, v := range res.Videos.Results {
		if v.Type == "Trailer" && v.Site == "YouTube" {
			return v.Key
		}
	}
	return ""
}

// parseDate accepts both the plain dates and the RFC 3339 timestamps TMDB
// uses across endpoints.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

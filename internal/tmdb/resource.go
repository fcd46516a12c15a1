package tmdb

// Raw response shapes for the TMDB v3 API, prior to mapping into the
// canonical movie model. Only the fields the mapper consumes are modeled.

// MovieResource is the full movie payload, including the blocks requested
// through append_to_response.
type MovieResource struct {
	ID               int    `json:"id"`
	ImdbID           string `json:"imdb_id"`
	Title            string `json:"title"`
	OriginalTitle    string `json:"original_title"`
	OriginalLanguage string `json:"original_language"`
	Overview         string `json:"overview"`
	Tagline          string `json:"tagline"`
	Homepage         string `json:"homepage"`
	Status           string `json:"status"`
	ReleaseDate      string `json:"release_date"`
	Runtime          int    `json:"runtime"`
	PosterPath       string `json:"poster_path"`
	BackdropPath     string `json:"backdrop_path"`

	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	Popularity  float64 `json:"popularity"`

	Genres []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`

	ProductionCompanies []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"production_companies"`

	ProductionCountries []struct {
		Iso3166_1 string `json:"iso_3166_1"`
		Name      string `json:"name"`
	} `json:"production_countries"`

	BelongsToCollection *struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"belongs_to_collection"`

	AlternativeTitles *struct {
		Titles []AlternativeTitleResource `json:"titles"`
	} `json:"alternative_titles"`

	Translations *struct {
		Translations []TranslationResource `json:"translations"`
	} `json:"translations"`

	Credits *CreditsResource `json:"credits"`

	Images *ImagesResource `json:"images"`

	ReleaseDates *struct {
		Results []CountryReleasesResource `json:"results"`
	} `json:"release_dates"`

	Videos *struct {
		Results []VideoResource `json:"results"`
	} `json:"videos"`

	Recommendations *struct {
		Results []MovieShortResource `json:"results"`
	} `json:"recommendations"`
}

// MovieShortResource is the abbreviated movie shape used in search results
// and recommendation lists.
type MovieShortResource struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
}

// AlternativeTitleResource is one regional alternate title.
type AlternativeTitleResource struct {
	Iso3166_1 string `json:"iso_3166_1"`
	Title     string `json:"title"`
	Type      string `json:"type"`
}

// TranslationResource is one localized title/overview pair.
type TranslationResource struct {
	Iso639_1 string `json:"iso_639_1"`
	Data     struct {
		Title    string `json:"title"`
		Overview string `json:"overview"`
	} `json:"data"`
}

// CreditsResource groups the cast and crew lists.
type CreditsResource struct {
	Cast []CastResource `json:"cast"`
	Crew []CrewResource `json:"crew"`
}

// CastResource is one cast entry.
type CastResource struct {
	ID          int    `json:"id"`
	CreditID    string `json:"credit_id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	Order       int    `json:"order"`
	ProfilePath string `json:"profile_path"`
}

// CrewResource is one crew entry.
type CrewResource struct {
	ID          int    `json:"id"`
	CreditID    string `json:"credit_id"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	Job         string `json:"job"`
	ProfilePath string `json:"profile_path"`
}

// ImagesResource lists the poster and backdrop images for a movie.
type ImagesResource struct {
	Posters   []ImageResource `json:"posters"`
	Backdrops []ImageResource `json:"backdrops"`
}

// ImageResource is a single provider image path, relative to the image base.
type ImageResource struct {
	FilePath    string  `json:"file_path"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Iso639_1    string  `json:"iso_639_1"`
	VoteAverage float64 `json:"vote_average"`
}

// Release date types as defined by the TMDB API.
const (
	releasePremiere    = 1
	releaseTheatricalL = 2
	releaseTheatrical  = 3
	releaseDigital     = 4
	releasePhysical    = 5
)

// CountryReleasesResource groups the per-country release dates.
type CountryReleasesResource struct {
	Iso3166_1    string                `json:"iso_3166_1"`
	ReleaseDates []ReleaseDateResource `json:"release_dates"`
}

// ReleaseDateResource is one dated release event with its certification.
type ReleaseDateResource struct {
	Certification string `json:"certification"`
	ReleaseDate   string `json:"release_date"`
	Type          int    `json:"type"`
}

// VideoResource is one attached video (trailer, teaser, clip).
type VideoResource struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// CollectionResource is a movie collection with its localized overview.
type CollectionResource struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Overview string `json:"overview"`
}

// changesPage is one page of the movie change feed.
type changesPage struct {
	Results []struct {
		ID int `json:"id"`
	} `json:"results"`
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
}

// findResult is the response of a find-by-external-id lookup.
type findResult struct {
	MovieResults []MovieShortResource `json:"movie_results"`
}

// searchPage is one page of movie search results.
type searchPage struct {
	Results []MovieShortResource `json:"results"`
}

package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/sidecarr/sidecarr/internal/movie"
	"github.com/sidecarr/sidecarr/internal/parse"
	"github.com/sidecarr/sidecarr/internal/tmdb"
)

// LanguageOriginal selects the movie's own original language for metadata.
const LanguageOriginal = "original"

// XbmcSettings drives what the Kodi consumer produces and how files are
// named.
type XbmcSettings struct {
	// Description enables the .nfo document.
	Description bool
	// DescriptionURL appends the provider web URLs to the document.
	DescriptionURL bool
	// Language is an ISO 639-1 code, or LanguageOriginal.
	Language string
	// Images enables poster/fanart sidecars.
	Images bool
	// SharedDescriptionFilename names the document movie.nfo instead of
	// <media-basename>.nfo.
	SharedDescriptionFilename bool
	// SharedImageBasename names images poster.jpg/fanart.jpg instead of
	// <media-basename>-poster.jpg / -fanart.jpg.
	SharedImageBasename bool
}

// ProviderSource is the provider surface the consumer needs beyond the
// already-resolved movie: the full image list and collection details.
type ProviderSource interface {
	GetImages(ctx context.Context, tmdbID int, primaryLanguage, fallbackLanguages string) (*tmdb.ImagesResource, error)
	GetCollection(ctx context.Context, collectionID int, language string) (*tmdb.CollectionResource, error)
	ImageURL(size, path string) string
}

var (
	movieImageRe     = regexp.MustCompile(`(?i)^(poster|banner|fanart|clearart|discart|keyart|landscape|logo|backdrop|clearlogo)\.(?:png|jpe?g)`)
	movieFileImageRe = regexp.MustCompile(`(?i)(-thumb|-poster|-banner|-fanart|-clearart|-discart|-keyart|-landscape|-logo|-backdrop|-clearlogo)\.(?:png|jpe?g)`)
)

// XbmcConsumer produces Kodi/Emby compatible sidecar files from TMDB data.
type XbmcConsumer struct {
	settings XbmcSettings
	source   ProviderSource
	detector NfoDetector
	logger   *slog.Logger
	now      func() time.Time
}

// NewXbmcConsumer creates the consumer. source may be nil, in which case the
// document omits the secondary image thumbnails and collection overview.
func NewXbmcConsumer(settings XbmcSettings, source ProviderSource, detector NfoDetector, logger *slog.Logger) *XbmcConsumer {
	if detector == nil {
		detector = XMLDetector{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &XbmcConsumer{
		settings: settings,
		source:   source,
		detector: detector,
		logger:   logger,
		now:      time.Now,
	}
}

func (c *XbmcConsumer) Name() string { return "Kodi (XBMC) / Emby from TMDB" }

// MovieMetadata renders the description document for a movie. Returns nil
// when neither the document nor the URL artifact is enabled.
func (c *XbmcConsumer) MovieMetadata(ctx context.Context, m *movie.Movie, file *MovieFile) (*MetadataFileResult, error) {
	var out strings.Builder

	if c.settings.Description {
		c.logger.Debug("generating movie metadata",
			"movie", m.Title,
			"path", filepath.Join(file.MovieDir, file.RelativePath))

		doc, err := c.buildDocument(ctx, m, file)
		if err != nil {
			return nil, err
		}
		rendered, err := renderNFO(doc)
		if err != nil {
			return nil, err
		}
		out.WriteString(rendered)
	}

	if c.settings.DescriptionURL {
		fmt.Fprintf(&out, "https://www.themoviedb.org/movie/%d\n", m.TmdbID)
		if m.ImdbID != "" {
			fmt.Fprintf(&out, "https://www.imdb.com/title/%s\n", m.ImdbID)
		}
	}

	if out.Len() == 0 {
		return nil, nil
	}

	return &MetadataFileResult{
		RelativePath: c.metadataFilename(file.RelativePath),
		Contents:     strings.Trim(out.String(), "\n"),
	}, nil
}

func (c *XbmcConsumer) buildDocument(ctx context.Context, m *movie.Movie, file *MovieFile) (*nfoMovie, error) {
	doc := &nfoMovie{
		Title:         m.Title,
		OriginalTitle: m.OriginalTitle,
		SortTitle:     strings.ToLower(m.Title),
		Rating:        m.Ratings.Value,
		Outline:       outlineOf(m.Overview),
		Plot:          m.Overview,
		Tagline:       m.Tagline,
		Runtime:       m.Runtime,
		MPAA:          m.Certification,
		TmdbUniqueID:  nfoUniqueID{Type: "tmdb", Default: "true", Value: fmt.Sprintf("%d", m.TmdbID)},
		TmdbID:        m.TmdbID,
		Genres:        m.Genres,
		Countries:     m.Countries,
		Status:        string(m.Status(c.now())),
		Studios:       m.Studios,
		DateAdded:     file.DateAdded.Format("2006-01-02T15:04:05"),
	}

	if m.Ratings.Value > 0 {
		doc.Ratings = &nfoRatings{Rating: nfoRating{
			Name:    "themoviedb",
			Max:     "10",
			Default: "true",
			Value:   m.Ratings.Value,
			Votes:   m.Ratings.Votes,
		}}
	}

	if poster, ok := m.Poster(); ok {
		doc.Thumbs = append(doc.Thumbs, nfoThumb{
			Aspect:  "poster",
			Preview: resizeImageURL(poster.URL, "w185"),
			URL:     poster.URL,
		})
	}

	c.addProviderImages(ctx, m, doc)

	if m.ImdbID != "" {
		doc.ImdbUniqueID = &nfoUniqueID{Type: "imdb", Value: m.ImdbID}
		doc.ImdbID = m.ImdbID
	}

	c.addCollection(ctx, m, doc)

	for _, credit := range m.Credits {
		if credit.IsWriter() {
			doc.Credits = append(doc.Credits, credit.Name)
		}
		if credit.IsDirector() {
			doc.Directors = append(doc.Directors, credit.Name)
		}
	}

	if m.InCinemas != nil {
		date := m.InCinemas.Format("2006-01-02")
		doc.ReleaseDate = date
		doc.Premiered = date
		doc.Year = m.InCinemas.Year()
	}

	if m.YouTubeTrailerID != "" {
		doc.Trailer = "https://www.youtube.com/watch?v=" + m.YouTubeTrailerID
	}

	if file.MediaInfo != nil {
		doc.FileInfo = c.fileInfo(file)
	}

	for _, credit := range m.Credits {
		if credit.Type != movie.CreditCast || credit.Name == "" || credit.Character == "" {
			continue
		}
		actor := nfoActor{Name: credit.Name, Role: credit.Character, Order: credit.Order}
		if headshot, ok := credit.Headshot(); ok {
			actor.Thumb = headshot.URL
		}
		doc.Actors = append(doc.Actors, actor)
	}

	return doc, nil
}

// addProviderImages appends the full poster list and the fanart block. A
// provider failure here degrades to the primary images only.
func (c *XbmcConsumer) addProviderImages(ctx context.Context, m *movie.Movie, doc *nfoMovie) {
	if c.source == nil {
		return
	}

	images, err := c.source.GetImages(ctx, m.TmdbID, c.language(m), c.fallbackLanguages(m))
	if err != nil {
		c.logger.Warn("could not fetch image list", "movie", m.Title, "error", err)
		return
	}

	for _, poster := range images.Posters {
		doc.Thumbs = append(doc.Thumbs, nfoThumb{
			Aspect:  "poster",
			Preview: c.source.ImageURL("w185", poster.FilePath),
			URL:     c.source.ImageURL("original", poster.FilePath),
		})
	}

	if len(images.Backdrops) > 0 {
		fanart := &nfoFanart{}
		for _, backdrop := range images.Backdrops {
			fanart.Thumbs = append(fanart.Thumbs, nfoThumb{
				Preview: c.source.ImageURL("w300", backdrop.FilePath),
				URL:     c.source.ImageURL("original", backdrop.FilePath),
			})
		}
		doc.Fanart = fanart
	}
}

// addCollection fills the collection elements. Failures degrade to the
// id/name pair already on the movie.
func (c *XbmcConsumer) addCollection(ctx context.Context, m *movie.Movie, doc *nfoMovie) {
	if m.Collection == nil {
		return
	}

	id := m.Collection.TmdbID
	doc.CollectionID = &id
	doc.Set = &nfoSet{TmdbColID: id, Name: m.Collection.Name}

	if c.source == nil {
		return
	}
	collection, err := c.source.GetCollection(ctx, id, c.language(m))
	if err != nil {
		c.logger.Warn("could not fetch collection", "movie", m.Title, "error", err)
		return
	}
	doc.Set.Name = collection.Name
	doc.Set.Overview = collection.Overview
}

func (c *XbmcConsumer) fileInfo(file *MovieFile) *nfoFileInfo {
	info := file.MediaInfo

	video := nfoVideo{
		Aspect:    aspectRatio(info.Width, info.Height),
		Bitrate:   info.VideoBitrate,
		Codec:     info.VideoCodec,
		Framerate: info.VideoFPS,
		Height:    info.Height,
		ScanType:  info.ScanType,
		Width:     info.Width,
	}
	if info.RunTime != 0 {
		video.Duration = fmt.Sprintf("%g", info.RunTime.Minutes())
		video.DurationInSeconds = fmt.Sprintf("%g", info.RunTime.Seconds())
	}

	audio := nfoAudio{
		Bitrate:  info.AudioBitrate,
		Channels: info.AudioChannelCount(),
		Codec:    info.AudioCodec,
		Language: strings.Join(info.AudioLanguages, "/"),
	}

	details := nfoStreamDetails{Video: video, Audio: audio}
	if len(info.Subtitles) > 0 {
		details.Subtitle = &nfoSubtitle{Language: strings.Join(info.Subtitles, "/")}
	}

	return &nfoFileInfo{StreamDetails: details}
}

// MovieImages returns the poster and fanart sidecars, each only when the
// movie carries that image.
func (c *XbmcConsumer) MovieImages(ctx context.Context, m *movie.Movie, file *MovieFile) ([]ImageFileResult, error) {
	if !c.settings.Images {
		return nil, nil
	}

	c.logger.Debug("generating movie images",
		"movie", m.Title,
		"path", filepath.Join(file.MovieDir, file.RelativePath))

	var results []ImageFileResult
	if fanart, ok := m.Fanart(); ok {
		results = append(results, ImageFileResult{
			RelativePath: c.imageFilename(file.RelativePath, true),
			URL:          fanart.URL,
		})
	}
	if poster, ok := m.Poster(); ok {
		results = append(results, ImageFileResult{
			RelativePath: c.imageFilename(file.RelativePath, false),
			URL:          poster.URL,
		})
	}
	return results, nil
}

// FindMetadataFile classifies a file under the movie's folder, returning nil
// when the file is not ours to manage.
func (c *XbmcConsumer) FindMetadataFile(m *movie.Movie, path string) *MetadataFile {
	filename := filepath.Base(path)
	if filename == "" || filename == "." {
		return nil
	}

	relative, err := filepath.Rel(m.Path, path)
	if err != nil {
		relative = filename
	}

	meta := &MetadataFile{
		MovieTmdbID:  m.TmdbID,
		Consumer:     c.Name(),
		RelativePath: relative,
	}

	if movieImageRe.MatchString(filename) || movieFileImageRe.MatchString(filename) {
		meta.Type = TypeMovieImage
		return meta
	}

	if strings.EqualFold(filename, "movie.nfo") && c.detector.IsMetadataNfo(path) {
		meta.Type = TypeMovieMetadata
		return meta
	}

	if strings.EqualFold(filepath.Ext(filename), ".nfo") &&
		parse.MovieTitle(filename) != nil &&
		c.detector.IsMetadataNfo(path) {
		meta.Type = TypeMovieMetadata
		return meta
	}

	return nil
}

// FilenameAfterMove recomputes a sidecar's path after its media file moved.
func (c *XbmcConsumer) FilenameAfterMove(m *movie.Movie, file *MovieFile, meta *MetadataFile) string {
	moviePath := filepath.Join(file.MovieDir, file.RelativePath)

	switch meta.Type {
	case TypeMovieMetadata:
		return filepath.Join(file.MovieDir, c.metadataFilename(file.RelativePath))
	case TypeMovieImage:
		isFanart := strings.Contains(meta.RelativePath, "fanart.jpg")
		return filepath.Join(file.MovieDir, c.imageFilename(file.RelativePath, isFanart))
	}

	c.logger.Debug("unknown movie metadata file", "path", moviePath, "relative", meta.RelativePath)
	return filepath.Join(file.MovieDir, meta.RelativePath)
}

// metadataFilename is the description path for a media file, relative to the
// movie folder.
func (c *XbmcConsumer) metadataFilename(mediaRelativePath string) string {
	if c.settings.SharedDescriptionFilename {
		dir := filepath.Dir(mediaRelativePath)
		if dir == "." {
			return "movie.nfo"
		}
		return filepath.Join(dir, "movie.nfo")
	}
	ext := filepath.Ext(mediaRelativePath)
	return strings.TrimSuffix(mediaRelativePath, ext) + ".nfo"
}

// imageFilename is the poster/fanart path for a media file, placed at the
// movie root.
func (c *XbmcConsumer) imageFilename(mediaRelativePath string, isFanart bool) string {
	var b strings.Builder
	if !c.settings.SharedImageBasename {
		base := filepath.Base(mediaRelativePath)
		b.WriteString(strings.TrimSuffix(base, filepath.Ext(base)))
		b.WriteByte('-')
	}
	if isFanart {
		b.WriteString("fanart.jpg")
	} else {
		b.WriteString("poster.jpg")
	}
	return b.String()
}

// language is the metadata language for a movie, honoring the "original
// language" sentinel.
func (c *XbmcConsumer) language(m *movie.Movie) string {
	if c.settings.Language == "" {
		return "en"
	}
	if c.settings.Language == LanguageOriginal {
		if m.OriginalLanguage.Code != "" {
			return m.OriginalLanguage.Code
		}
		return "en"
	}
	return c.settings.Language
}

// fallbackLanguages is the image-language fallback chain sent to the
// provider.
func (c *XbmcConsumer) fallbackLanguages(m *movie.Movie) string {
	lang := c.language(m)
	if lang == "en" {
		return "en,null"
	}
	return lang + ",en,null"
}

// resizeImageURL rewrites an original-size image URL to another size
// segment for preview attributes.
func resizeImageURL(url, size string) string {
	return strings.Replace(url, "/original/", "/"+size+"/", 1)
}

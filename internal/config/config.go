// Package config loads application settings from a config file, environment
// variables and defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings is the full application configuration.
type Settings struct {
	TMDB     TMDBSettings     `mapstructure:"tmdb"`
	Metadata MetadataSettings `mapstructure:"metadata"`
	Library  LibrarySettings  `mapstructure:"library"`
	Emby     EmbySettings     `mapstructure:"emby"`
	Log      LogSettings      `mapstructure:"log"`
}

// TMDBSettings configures the metadata provider client.
type TMDBSettings struct {
	APIKey        string        `mapstructure:"api_key"`
	Language      string        `mapstructure:"language"`
	CacheDir      string        `mapstructure:"cache_dir"`
	CacheDuration time.Duration `mapstructure:"cache_duration"`
	// CertificationCountry selects whose certification ends up in the
	// generated documents.
	CertificationCountry string `mapstructure:"certification_country"`
}

// MetadataSettings drives sidecar generation.
type MetadataSettings struct {
	// Description enables the .nfo document.
	Description bool `mapstructure:"description"`
	// DescriptionURL appends provider web URLs to the document.
	DescriptionURL bool `mapstructure:"description_url"`
	// Language is an ISO 639-1 code or "original".
	Language string `mapstructure:"language"`
	// Images enables poster/fanart sidecars.
	Images bool `mapstructure:"images"`
	// SharedDescriptionFilename writes movie.nfo instead of
	// <media-basename>.nfo.
	SharedDescriptionFilename bool `mapstructure:"shared_description_filename"`
	// SharedImageBasename writes poster.jpg/fanart.jpg instead of
	// per-media-file names.
	SharedImageBasename bool `mapstructure:"shared_image_basename"`
	// Workers caps how many movies generate concurrently.
	Workers int `mapstructure:"workers"`
}

// LibrarySettings locates the local movie library.
type LibrarySettings struct {
	Path         string `mapstructure:"path"`
	DatabasePath string `mapstructure:"database_path"`
}

// EmbySettings configures the optional media-server notifier.
type EmbySettings struct {
	Enabled            bool          `mapstructure:"enabled"`
	Address            string        `mapstructure:"address"`
	APIKey             string        `mapstructure:"api_key"`
	UseSSL             bool          `mapstructure:"use_ssl"`
	UpdateLibraryMode  int           `mapstructure:"update_library_mode"`
	UpdateLibraryDelay time.Duration `mapstructure:"update_library_delay"`
}

// LogSettings configures logging output.
type LogSettings struct {
	Level string `mapstructure:"level"`
}

// Load reads the configuration. path, when non-empty, names an explicit
// config file; otherwise sidecarr.yaml is searched for in the working
// directory and ~/.config/sidecarr. Environment variables prefixed with
// SIDECARR_ override file values.
func Load(path string) (*Settings, error) {
	v := viper.New()

	// Keys without a meaningful default still need registering so that
	// environment-only values survive Unmarshal.
	v.SetDefault("tmdb.api_key", "")
	v.SetDefault("library.path", "")
	v.SetDefault("tmdb.language", "en")
	v.SetDefault("tmdb.certification_country", "US")
	v.SetDefault("tmdb.cache_duration", 24*time.Hour)
	v.SetDefault("metadata.description", true)
	v.SetDefault("metadata.language", "en")
	v.SetDefault("metadata.images", true)
	v.SetDefault("metadata.workers", 8)
	v.SetDefault("library.database_path", "sidecarr.db")
	v.SetDefault("emby.update_library_mode", 1)
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("SIDECARR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("sidecarr")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/sidecarr")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &settings, nil
}

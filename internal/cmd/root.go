package cmd

import (
	"log/slog"
	"os"

	"github.com/lepinkainen/humanlog"
	"github.com/spf13/cobra"

	"github.com/sidecarr/sidecarr/internal/config"
	"github.com/sidecarr/sidecarr/internal/metadata"
	"github.com/sidecarr/sidecarr/internal/notify"
	"github.com/sidecarr/sidecarr/internal/search"
	"github.com/sidecarr/sidecarr/internal/store"
	"github.com/sidecarr/sidecarr/internal/tmdb"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sidecarr",
	Short: "Movie metadata sidecar generator",
	Long: `sidecarr resolves free-form movie identifiers (filenames, titles, or
explicit imdb:/tmdb: queries) against TMDB and generates Kodi/Emby
compatible sidecar files: .nfo description documents and poster/fanart
images, named so media centers pick them up without configuration.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		settings, err = config.Load(configPath)
		if err != nil {
			return err
		}
		initLogging(settings.Log.Level)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	configPath string
	settings   *config.Settings
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ./sidecarr.yaml)")
}

func initLogging(level string) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	handler := humanlog.NewHandler(os.Stderr, &humanlog.Options{
		Level: l,
	})
	slog.SetDefault(slog.New(handler))
}

// newClient builds the shared provider client. It is constructed once per
// invocation and passed to every component that talks to the provider.
func newClient() *tmdb.Client {
	opts := []tmdb.Option{
		tmdb.WithLanguage(settings.TMDB.Language),
	}
	if settings.TMDB.CacheDir != "" {
		opts = append(opts, tmdb.WithCache(settings.TMDB.CacheDir, settings.TMDB.CacheDuration))
	}
	return tmdb.NewClient(settings.TMDB.APIKey, opts...)
}

func newMapper() *tmdb.Mapper {
	return tmdb.NewMapper(settings.TMDB.CertificationCountry, settings.TMDB.Language)
}

// openStore opens the library database, or returns nil when none is
// configured.
func openStore() (*store.MovieStore, error) {
	if settings.Library.DatabasePath == "" {
		return nil, nil
	}
	return store.Open(settings.Library.DatabasePath)
}

func newResolver(st *store.MovieStore, client *tmdb.Client) *search.Resolver {
	var s search.Store
	if st != nil {
		s = st
	}
	return search.NewResolver(s, client, newMapper(), slog.Default())
}

func newConsumer(client *tmdb.Client) *metadata.XbmcConsumer {
	return metadata.NewXbmcConsumer(metadata.XbmcSettings{
		Description:               settings.Metadata.Description,
		DescriptionURL:            settings.Metadata.DescriptionURL,
		Language:                  settings.Metadata.Language,
		Images:                    settings.Metadata.Images,
		SharedDescriptionFilename: settings.Metadata.SharedDescriptionFilename,
		SharedImageBasename:       settings.Metadata.SharedImageBasename,
	}, client, metadata.XMLDetector{}, slog.Default())
}

// newNotifier returns the Emby notifier, or nil when disabled.
func newNotifier() *notify.EmbyNotifier {
	if !settings.Emby.Enabled {
		return nil
	}
	return notify.NewEmbyNotifier(notify.EmbySettings{
		Address:            settings.Emby.Address,
		APIKey:             settings.Emby.APIKey,
		UseSSL:             settings.Emby.UseSSL,
		UpdateLibraryMode:  settings.Emby.UpdateLibraryMode,
		UpdateLibraryDelay: settings.Emby.UpdateLibraryDelay,
	}, nil, slog.Default())
}

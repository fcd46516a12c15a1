package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sidecarr/sidecarr/internal/mediainfo"
	"github.com/sidecarr/sidecarr/internal/metadata"
	"github.com/sidecarr/sidecarr/internal/parse"
	"github.com/sidecarr/sidecarr/internal/search"
)

var generateCmd = &cobra.Command{
	Use:   "generate [movie-dir]...",
	Short: "Generate sidecar metadata for movie folders",
	Long: `Generate .nfo description documents and poster/fanart images for the
given movie folders. With no arguments, every folder directly under the
configured library path is processed. Folders whose movie cannot be
auto-matched are skipped with a warning.`,
	RunE: runGenerateCommand,
}

var skipProbe bool

func init() {
	generateCmd.Flags().BoolVar(&skipProbe, "skip-probe", false, "Skip ffprobe and omit the fileinfo block")
	rootCmd.AddCommand(generateCmd)
}

func runGenerateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	dirs, err := movieDirs(args)
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		return fmt.Errorf("no movie folders to process")
	}

	client := newClient()
	defer client.SaveCache()

	st, err := openStore()
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	resolver := newResolver(st, client)
	prober := mediainfo.NewProber()

	var jobs []metadata.Job
	for _, dir := range dirs {
		job, ok := buildJob(ctx, dir, resolver, prober)
		if ok {
			jobs = append(jobs, job)
		}
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no movies could be matched")
	}

	consumer := newConsumer(client)
	engine := metadata.NewEngine(consumer, settings.Metadata.Workers)
	writer := metadata.NewWriter(consumer, nil, slog.Default())
	notifier := newNotifier()

	results := engine.Run(ctx, jobs)

	var failed int
	for _, result := range results {
		if err := writer.Write(ctx, result); err != nil {
			slog.Error("metadata generation failed",
				"movie", result.Movie.Title, "error", err)
			failed++
			continue
		}

		if st != nil {
			if err := st.Upsert(ctx, result.Movie); err != nil {
				slog.Warn("could not store movie", "movie", result.Movie.Title, "error", err)
			}
		}
		if notifier != nil {
			if err := notifier.MetadataUpdated(ctx, result.Movie); err != nil {
				slog.Warn("media server notification failed",
					"movie", result.Movie.Title, "error", err)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", result.Movie.Title)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d movies failed", failed, len(results))
	}
	return nil
}

// buildJob resolves one movie folder into an engine job. Returns false when
// the folder has no video file or its movie cannot be matched.
func buildJob(ctx context.Context, dir string, resolver *search.Resolver, prober *mediainfo.Prober) (metadata.Job, bool) {
	video, ok := videoFile(dir)
	if !ok {
		slog.Warn("no video file in folder, skipping", "dir", dir)
		return metadata.Job{}, false
	}

	req := search.Request{Title: filepath.Base(dir)}
	if parsed := parse.MovieTitle(video); parsed != nil {
		req.Title = parsed.Title
		req.Year = parsed.Year
		req.ImdbID = parsed.ImdbID
	} else if parsed := parse.MovieTitle(filepath.Base(dir)); parsed != nil {
		req.Title = parsed.Title
		req.Year = parsed.Year
		req.ImdbID = parsed.ImdbID
	}

	m := resolver.Resolve(ctx, req)
	if m == nil {
		return metadata.Job{}, false
	}
	m.Path = dir

	file := &metadata.MovieFile{
		MovieDir:     dir,
		RelativePath: video,
		DateAdded:    fileDateAdded(filepath.Join(dir, video)),
	}

	if !skipProbe {
		info, err := prober.Probe(ctx, filepath.Join(dir, video))
		if err != nil {
			slog.Warn("probe failed, omitting fileinfo", "file", video, "error", err)
		} else {
			file.MediaInfo = info
		}
	}

	return metadata.Job{Movie: m, File: file}, true
}

// fileDateAdded approximates when a file entered the library by its mtime.
func fileDateAdded(path string) time.Time {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Now()
	}
	return fi.ModTime()
}

// movieDirs expands the command arguments, falling back to the configured
// library path.
func movieDirs(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if settings.Library.Path == "" {
		return nil, fmt.Errorf("no folders given and no library path configured")
	}

	entries, err := os.ReadDir(settings.Library.Path)
	if err != nil {
		return nil, fmt.Errorf("read library: %w", err)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(settings.Library.Path, entry.Name()))
		}
	}
	return dirs, nil
}

// videoFile returns the first video file in a movie folder, relative to it.
func videoFile(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		if !entry.IsDir() && parse.IsVideo(entry.Name()) {
			return entry.Name(), true
		}
	}
	return "", false
}

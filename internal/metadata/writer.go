package metadata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

// HTTPDoer executes HTTP requests. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Writer persists engine results into movie folders. Before overwriting an
// existing description file it verifies the file is ours, so another
// manager's same-named .nfo is never clobbered.
type Writer struct {
	consumer   Consumer
	httpClient HTTPDoer
	logger     *slog.Logger
}

// NewWriter creates a writer. httpClient is used to download image sidecars
// and defaults to http.DefaultClient.
func NewWriter(consumer Consumer, httpClient HTTPDoer, logger *slog.Logger) *Writer {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{consumer: consumer, httpClient: httpClient, logger: logger}
}

// Write materializes one movie's sidecar files under its folder.
func (w *Writer) Write(ctx context.Context, result Result) error {
	if result.Err != nil {
		return result.Err
	}

	if result.Description != nil {
		if err := w.writeDescription(result); err != nil {
			return err
		}
	}

	for _, img := range result.Images {
		if err := w.writeImage(ctx, result.Movie.Path, img); err != nil {
			return err
		}
	}

	return nil
}

func (w *Writer) writeDescription(result Result) error {
	path := filepath.Join(result.Movie.Path, result.Description.RelativePath)

	if _, err := os.Stat(path); err == nil {
		if w.consumer.FindMetadataFile(result.Movie, path) == nil {
			w.logger.Warn("existing description file is not ours, leaving it alone",
				"movie", result.Movie.Title, "path", path)
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metadata dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(result.Description.Contents+"\n"), 0o644); err != nil {
		return fmt.Errorf("write description %s: %w", path, err)
	}

	w.logger.Debug("wrote description", "movie", result.Movie.Title, "path", path)
	return nil
}

func (w *Writer) writeImage(ctx context.Context, movieDir string, img ImageFileResult) error {
	path := filepath.Join(movieDir, img.RelativePath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, img.URL, nil)
	if err != nil {
		return fmt.Errorf("image request: %w", err)
	}
	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download image %s: %w", img.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download image %s: unexpected status %d", img.URL, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create image dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("write image %s: %w", path, err)
	}

	w.logger.Debug("wrote image", "path", path, "url", img.URL)
	return nil
}

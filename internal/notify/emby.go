// Package notify pushes library-change events to an Emby or Jellyfin server
// after metadata generation, so the server picks up new sidecar files
// without a full rescan.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sidecarr/sidecarr/internal/movie"
)

// Library update modes.
const (
	UpdateModeNone    = 0
	UpdateModeUpdated = 1
	UpdateModeRefresh = 2
)

// EmbySettings configures a media-server target.
type EmbySettings struct {
	// Address is host:port of the server.
	Address string
	// APIKey authenticates against the server.
	APIKey string
	// UseSSL selects https.
	UseSSL bool
	// UpdateLibraryMode is one of the UpdateMode constants.
	UpdateLibraryMode int
	// UpdateLibraryDelay postpones the update after generation.
	UpdateLibraryDelay time.Duration
}

// HTTPDoer executes HTTP requests. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// EmbyNotifier talks to the Emby/Jellyfin media-browser API.
type EmbyNotifier struct {
	settings   EmbySettings
	httpClient HTTPDoer
	logger     *slog.Logger
	sleep      func(time.Duration)
}

// NewEmbyNotifier creates a notifier. httpClient defaults to
// http.DefaultClient.
func NewEmbyNotifier(settings EmbySettings, httpClient HTTPDoer, logger *slog.Logger) *EmbyNotifier {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EmbyNotifier{
		settings:   settings,
		httpClient: httpClient,
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// Notify sends an admin notification message.
func (n *EmbyNotifier) Notify(ctx context.Context, title, message string) error {
	body := map[string]string{
		"Name":        title,
		"Description": message,
	}
	return n.post(ctx, "/Notifications/Admin", body)
}

// MetadataUpdated reports a generated movie to the server according to the
// configured update mode.
func (n *EmbyNotifier) MetadataUpdated(ctx context.Context, m *movie.Movie) error {
	switch n.settings.UpdateLibraryMode {
	case UpdateModeUpdated:
		if n.settings.UpdateLibraryDelay > 0 {
			n.sleep(n.settings.UpdateLibraryDelay)
		}
		n.logger.Debug("scheduling library update", "movie", m.Title, "path", m.Path)
		return n.UpdateMovies(ctx, m.Path, "Modified")
	case UpdateModeRefresh:
		if n.settings.UpdateLibraryDelay > 0 {
			n.sleep(n.settings.UpdateLibraryDelay)
		}
		n.logger.Debug("scheduling library refresh", "movie", m.Title)
		return n.RefreshMovies(ctx)
	}
	return nil
}

// UpdateMovies reports a single changed path to the server.
func (n *EmbyNotifier) UpdateMovies(ctx context.Context, moviePath, updateType string) error {
	body := map[string]any{
		"Updates": []map[string]string{
			{"Path": moviePath, "UpdateType": updateType},
		},
	}
	return n.post(ctx, "/Library/Media/Updated", body)
}

// RefreshMovies triggers a full library refresh.
func (n *EmbyNotifier) RefreshMovies(ctx context.Context) error {
	return n.do(ctx, http.MethodPost, "/Library/Refresh", nil)
}

func (n *EmbyNotifier) post(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	return n.do(ctx, http.MethodPost, path, payload)
}

func (n *EmbyNotifier) do(ctx context.Context, method, path string, payload []byte) error {
	scheme := "http"
	if n.settings.UseSSL {
		scheme = "https"
	}
	url := fmt.Sprintf("%s://%s/mediabrowser%s", scheme, n.settings.Address, path)

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-MediaBrowser-Token", n.settings.APIKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notify %s: %w", path, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("notify %s: unexpected status %d", path, resp.StatusCode)
	}
	return nil
}

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/sidecarr/sidecarr/internal/movie"
)

// recordingDoer captures requests and answers with a fixed status.
type recordingDoer struct {
	status   int
	requests []*http.Request
	bodies   [][]byte
}

func (d *recordingDoer) Do(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}
	d.requests = append(d.requests, req)
	d.bodies = append(d.bodies, body)

	status := d.status
	if status == 0 {
		status = http.StatusNoContent
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(nil)),
	}, nil
}

func newTestNotifier(settings EmbySettings, doer *recordingDoer) *EmbyNotifier {
	n := NewEmbyNotifier(settings, doer, nil)
	n.sleep = func(time.Duration) {}
	return n
}

func TestNotify(t *testing.T) {
	t.Parallel()
	doer := &recordingDoer{}
	n := newTestNotifier(EmbySettings{Address: "emby:8096", APIKey: "secret"}, doer)

	if err := n.Notify(context.Background(), "Metadata updated", "3 movies refreshed"); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if len(doer.requests) != 1 {
		t.Fatalf("len(requests) = %d, want 1", len(doer.requests))
	}

	req := doer.requests[0]
	if got, want := req.URL.String(), "http://emby:8096/mediabrowser/Notifications/Admin"; got != want {
		t.Errorf("url = %q, want %q", got, want)
	}
	if got := req.Header.Get("X-MediaBrowser-Token"); got != "secret" {
		t.Errorf("token header = %q, want secret", got)
	}

	var body map[string]string
	if err := json.Unmarshal(doer.bodies[0], &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["Name"] != "Metadata updated" || body["Description"] != "3 movies refreshed" {
		t.Errorf("body = %v", body)
	}
}

func TestNotifyUsesSSL(t *testing.T) {
	t.Parallel()
	doer := &recordingDoer{}
	n := newTestNotifier(EmbySettings{Address: "emby:8920", UseSSL: true}, doer)

	if err := n.RefreshMovies(context.Background()); err != nil {
		t.Fatalf("RefreshMovies() error = %v", err)
	}
	if got, want := doer.requests[0].URL.String(), "https://emby:8920/mediabrowser/Library/Refresh"; got != want {
		t.Errorf("url = %q, want %q", got, want)
	}
}

func TestMetadataUpdatedModes(t *testing.T) {
	t.Parallel()
	m := &movie.Movie{Title: "Inception", Path: "/library/Inception (2010)"}

	tests := []struct {
		name     string
		mode     int
		wantPath string
		wantNone bool
	}{
		{"disabled", UpdateModeNone, "", true},
		{"updated", UpdateModeUpdated, "/mediabrowser/Library/Media/Updated", false},
		{"refresh", UpdateModeRefresh, "/mediabrowser/Library/Refresh", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			doer := &recordingDoer{}
			n := newTestNotifier(EmbySettings{
				Address:            "emby:8096",
				UpdateLibraryMode:  test.mode,
				UpdateLibraryDelay: time.Second,
			}, doer)

			if err := n.MetadataUpdated(context.Background(), m); err != nil {
				t.Fatalf("MetadataUpdated() error = %v", err)
			}
			if test.wantNone {
				if len(doer.requests) != 0 {
					t.Fatalf("len(requests) = %d, want 0", len(doer.requests))
				}
				return
			}
			if len(doer.requests) != 1 {
				t.Fatalf("len(requests) = %d, want 1", len(doer.requests))
			}
			if got := doer.requests[0].URL.Path; got != test.wantPath {
				t.Errorf("path = %q, want %q", got, test.wantPath)
			}
		})
	}
}

func TestUpdateMoviesBody(t *testing.T) {
	t.Parallel()
	doer := &recordingDoer{}
	n := newTestNotifier(EmbySettings{Address: "emby:8096"}, doer)

	if err := n.UpdateMovies(context.Background(), "/library/Inception (2010)", "Modified"); err != nil {
		t.Fatalf("UpdateMovies() error = %v", err)
	}

	var body struct {
		Updates []struct {
			Path       string
			UpdateType string
		}
	}
	if err := json.Unmarshal(doer.bodies[0], &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Updates) != 1 ||
		body.Updates[0].Path != "/library/Inception (2010)" ||
		body.Updates[0].UpdateType != "Modified" {
		t.Errorf("body = %+v", body)
	}
}

func TestNotifyErrorStatus(t *testing.T) {
	t.Parallel()
	doer := &recordingDoer{status: http.StatusUnauthorized}
	n := newTestNotifier(EmbySettings{Address: "emby:8096"}, doer)

	if err := n.Notify(context.Background(), "t", "m"); err == nil {
		t.Error("Notify() error = nil, want failure on 401")
	}
}

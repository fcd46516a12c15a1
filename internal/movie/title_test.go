package movie

import "testing"

func TestCleanTitleOf(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"The Matrix", "thematrix"},
		{"Se7en", "se7en"},
		{"Amélie", "amélie"},
		{"Mission: Impossible - Fallout", "missionimpossiblefallout"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := CleanTitleOf(tc.in); got != tc.want {
			t.Errorf("CleanTitleOf(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCreditRoles(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		credit     Credit
		isWriter   bool
		isDirector bool
	}{
		{"screenplay crew", Credit{Type: CreditCrew, Job: "Screenplay"}, true, false},
		{"novel crew", Credit{Type: CreditCrew, Job: "Novel"}, true, false},
		{"director crew", Credit{Type: CreditCrew, Job: "Director"}, false, true},
		{"producer crew", Credit{Type: CreditCrew, Job: "Producer"}, false, false},
		{"cast with writer job field", Credit{Type: CreditCast, Job: "Writer"}, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.credit.IsWriter(); got != tc.isWriter {
				t.Errorf("IsWriter() = %v, want %v", got, tc.isWriter)
			}
			if got := tc.credit.IsDirector(); got != tc.isDirector {
				t.Errorf("IsDirector() = %v, want %v", got, tc.isDirector)
			}
		})
	}
}

func TestMovieImageSelection(t *testing.T) {
	t.Parallel()
	m := Movie{Images: []Image{
		{URL: "http://img/fanart.jpg", CoverType: CoverFanart},
		{URL: "http://img/poster.jpg", CoverType: CoverPoster},
	}}

	poster, ok := m.Poster()
	if !ok || poster.URL != "http://img/poster.jpg" {
		t.Errorf("Poster() = %v, %v, want poster URL", poster, ok)
	}
	fanart, ok := m.Fanart()
	if !ok || fanart.URL != "http://img/fanart.jpg" {
		t.Errorf("Fanart() = %v, %v, want fanart URL", fanart, ok)
	}

	empty := Movie{}
	if _, ok := empty.Poster(); ok {
		t.Error("Poster() on empty movie = ok, want absent")
	}
}

func TestParseCoverType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want CoverType
	}{
		{"poster", CoverPoster},
		{"fanart", CoverFanart},
		{"backdrop", CoverFanart},
		{"headshot", CoverHeadshot},
		{"profile", CoverHeadshot},
		{"banner", CoverUnknown},
		{"", CoverUnknown},
	}
	for _, tc := range tests {
		if got := ParseCoverType(tc.in); got != tc.want {
			t.Errorf("ParseCoverType(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

package movie

// CreditType distinguishes cast from crew credits.
type CreditType string

const (
	CreditCast CreditType = "cast"
	CreditCrew CreditType = "crew"
)

// Writer-equivalent crew jobs surfaced as "credits" in generated metadata.
var writerJobs = map[string]bool{
	"Screenplay": true,
	"Story":      true,
	"Novel":      true,
	"Writer":     true,
}

// Credit is a single cast or crew entry. A credit without a name carries no
// addressable identity and is discarded during mapping.
type Credit struct {
	Name string
	Type CreditType

	// Cast fields
	Character string
	Order     int

	// Crew fields
	Department string
	Job        string

	CreditTmdbID string
	PersonTmdbID int
	Images       []Image
}

// IsWriter reports whether a crew credit holds a writer-equivalent job.
func (c Credit) IsWriter() bool {
	return c.Type == CreditCrew && writerJobs[c.Job]
}

// IsDirector reports whether a crew credit is a director credit.
func (c Credit) IsDirector() bool {
	return c.Type == CreditCrew && c.Job == "Director"
}

// Headshot returns the first headshot image attached to the credit, if any.
func (c Credit) Headshot() (Image, bool) {
	for _, img := range c.Images {
		if img.CoverType == CoverHeadshot {
			return img, true
		}
	}
	return Image{}, false
}

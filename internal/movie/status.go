package movie

import "time"

// ReleaseStatus is the inferred availability of a movie.
type ReleaseStatus string

const (
	StatusAnnounced ReleaseStatus = "Announced"
	StatusInCinemas ReleaseStatus = "In Cinemas"
	StatusReleased  ReleaseStatus = "Released"
)

// releasedAfterCinemaWindow is how long a movie must have been in cinemas,
// with no known physical or digital date, before it is assumed released.
const releasedAfterCinemaWindow = 90 * 24 * time.Hour

// StatusAt derives the release status from the three release dates at the
// given instant. A movie with no dates at all stays Announced. The theatrical
// date can move it to InCinemas; a passed physical or digital date, or a
// theatrical date more than ninety days old with neither of those set,
// upgrades it to Released.
func StatusAt(now time.Time, inCinemas, physical, digital *time.Time) ReleaseStatus {
	status := StatusAnnounced

	if inCinemas != nil && now.After(*inCinemas) {
		status = StatusInCinemas

		if physical == nil && digital == nil && now.After(inCinemas.Add(releasedAfterCinemaWindow)) {
			status = StatusReleased
		}
	}

	if physical != nil && !now.Before(*physical) {
		status = StatusReleased
	}

	if digital != nil && !now.Before(*digital) {
		status = StatusReleased
	}

	return status
}

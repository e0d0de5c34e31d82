package types

type Album struct {
	ID      ID        `json:"id"`
	Title   string    `json:"title"`
	Artists []Artist  `json:"artists"`
	Year    int       `json:"year"`
	Genre   Genre     `json:"genre"`
	Volumes [][]Track `json:"volumes"`
}

// TotalTracks is the number of tracks across all volumes.
func (a *Album) TotalTracks() int {
	var n int
	for _, v := range a.Volumes {
		n += len(v)
	}

	return n
}

// TotalDiscs is the number of volumes the album is split into.
func (a *Album) TotalDiscs() int {
	return len(a.Volumes)
}

// IsSingle reports whether the album carries exactly one track.
func (a *Album) IsSingle() bool {
	return a.TotalTracks() == 1
}

package types

type Playlist struct {
	Title  string         `json:"title"`
	Tracks []PlaylistItem `json:"tracks"`
}

// PlaylistItem references a track of a playlist. Track is populated when the
// catalog inlines the full track entity, and nil when only the identifier
// pair is available and the track must be fetched separately.
type PlaylistItem struct {
	ID      ID     `json:"id"`
	AlbumID ID     `json:"albumId"`
	Track   *Track `json:"track"`
}

type ArtistInfo struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

type AlbumSummary struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
}

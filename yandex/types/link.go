package types

type LinkKind int

func (k LinkKind) String() string {
	switch k {
	case LinkKindTrack:
		return "track"
	case LinkKindAlbum:
		return "album"
	case LinkKindPlaylist:
		return "playlist"
	case LinkKindArtist:
		return "artist"
	}

	return "unknown"
}

const (
	LinkKindTrack LinkKind = iota
	LinkKindAlbum
	LinkKindPlaylist
	LinkKindArtist
)

type Link struct {
	Kind LinkKind
	// ID is the numeric entity identifier for track, album, and artist
	// links, and the playlist kind for owner-scoped playlist links.
	ID string
	// Owner is the playlist owner handle for owner-scoped playlist links.
	Owner string
	// UID is the opaque identifier of unscoped playlist links. It must be
	// resolved to an owner and kind pair before the playlist can be fetched.
	UID string
}

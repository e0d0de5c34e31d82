package types

type TagField string

const (
	FieldTitle       TagField = "title"
	FieldArtist      TagField = "artist"
	FieldAlbum       TagField = "album"
	FieldAlbumArtist TagField = "album_artist"
	FieldYear        TagField = "year"
	FieldGenre       TagField = "genre"
	FieldTrackNumber TagField = "track_number"
	FieldTotalTracks TagField = "total_tracks"
	FieldDiscNumber  TagField = "disc_number"
	FieldTotalDiscs  TagField = "total_discs"
	FieldVersion     TagField = "version"
	FieldDuration    TagField = "duration"
)

// TagSet is the normalized tag vocabulary extracted from a catalog track.
// A field is present only when a meaningful value exists for it. Present
// fields never carry empty values.
type TagSet map[TagField]string

func (t TagSet) Set(f TagField, v string) {
	if v != "" {
		t[f] = v
	}
}

func (t TagSet) Get(f TagField) string {
	return t[f]
}

func (t TagSet) Has(f TagField) bool {
	_, ok := t[f]

	return ok
}

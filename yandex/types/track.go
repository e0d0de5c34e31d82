package types

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ID accepts both the string and the numeric spelling the catalog uses
// interchangeably for entity identifiers.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	*id = ID(strings.Trim(string(b), `"`))

	return nil
}

func (id ID) String() string {
	return string(id)
}

// Genre accepts both the plain string and the object spelling of the catalog
// genre field, keeping only the genre name.
type Genre string

func (g *Genre) UnmarshalJSON(b []byte) error {
	switch r := gjson.ParseBytes(b); {
	case r.Type == gjson.String:
		*g = Genre(r.Str)
	case r.IsObject():
		*g = Genre(r.Get("name").Str)
	default:
		*g = ""
	}

	return nil
}

type Artist struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

type TrackPosition struct {
	Index  int `json:"index"`
	Volume int `json:"volume"`
}

type AlbumRef struct {
	ID            ID             `json:"id"`
	Title         string         `json:"title"`
	Artists       []Artist       `json:"artists"`
	Year          int            `json:"year"`
	Genre         Genre          `json:"genre"`
	TrackCount    int            `json:"trackCount"`
	TrackPosition *TrackPosition `json:"trackPosition"`
}

type Track struct {
	ID         ID             `json:"id"`
	Title      string         `json:"title"`
	Version    string         `json:"version"`
	Artists    []Artist       `json:"artists"`
	Albums     []AlbumRef     `json:"albums"`
	Year       int            `json:"year"`
	Genre      Genre          `json:"genre"`
	DurationMS int            `json:"durationMs"`
	Position   *TrackPosition `json:"trackPosition"`
	CoverURI   string         `json:"coverUri"`
}

// ArtistNames joins the non-empty artist names in catalog order.
func (t *Track) ArtistNames() string {
	return JoinArtistNames(t.Artists)
}

func JoinArtistNames(artists []Artist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}

	return strings.Join(names, ", ")
}

// Package metadata extracts the normalized tag vocabulary from catalog
// tracks.
package metadata

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/xeptore/yamdl/cache"
	"github.com/xeptore/yamdl/yandex/types"
)

// Overrides carries album-context values the caller knows better than the
// track entity does. A nil field means no override; a non-nil field always
// wins over the extracted value.
type Overrides struct {
	AlbumName   *string
	TotalTracks *int
	TotalDiscs  *int
}

type Extractor struct {
	cache  *cache.Metadata
	logger zerolog.Logger
}

// NewExtractor creates an extractor. A nil metadata cache disables caching.
func NewExtractor(logger zerolog.Logger, c *cache.Metadata) *Extractor {
	return &Extractor{
		cache:  c,
		logger: logger,
	}
}

func (e *Extractor) Extract(t *types.Track, o Overrides) types.TagSet {
	if nil == e.cache || t.ID == "" {
		return build(t, o)
	}

	var albumName string
	if nil != o.AlbumName {
		albumName = *o.AlbumName
	}

	key := cache.Key(t.ID.String(), albumName, o.TotalTracks, o.TotalDiscs, t.Version)
	if tags, ok := e.cache.Get(key); ok {
		e.logger.Trace().Str("track_id", t.ID.String()).Msg("Track metadata served from cache")

		return tags
	}

	tags := build(t, o)
	e.cache.Set(key, tags)

	return tags
}

func build(t *types.Track, o Overrides) types.TagSet {
	tags := make(types.TagSet)

	tags.Set(types.FieldTitle, t.Title)
	tags.Set(types.FieldArtist, t.ArtistNames())
	tags.Set(types.FieldVersion, t.Version)

	if t.DurationMS > 0 {
		tags.Set(types.FieldDuration, strconv.Itoa(t.DurationMS/1000))
	}

	var album *types.AlbumRef
	if len(t.Albums) > 0 {
		album = &t.Albums[0]
	}

	if nil != o.AlbumName && *o.AlbumName != "" {
		tags.Set(types.FieldAlbum, *o.AlbumName)
	} else if nil != album {
		tags.Set(types.FieldAlbum, album.Title)
	}

	if nil != album {
		tags.Set(types.FieldAlbumArtist, types.JoinArtistNames(album.Artists))
	}

	year := t.Year
	if nil != album && album.Year > 0 {
		year = album.Year
	}
	if year > 0 {
		tags.Set(types.FieldYear, strconv.Itoa(year))
	}

	genre := string(t.Genre)
	if nil != album && album.Genre != "" {
		genre = string(album.Genre)
	}
	tags.Set(types.FieldGenre, genre)

	pos := t.Position
	if nil != album && nil != album.TrackPosition {
		pos = album.TrackPosition
	}
	if nil != pos {
		if pos.Index > 0 {
			tags.Set(types.FieldTrackNumber, strconv.Itoa(pos.Index))
		}
		if pos.Volume > 0 {
			tags.Set(types.FieldDiscNumber, strconv.Itoa(pos.Volume))
		}
	}

	if nil != album && album.TrackCount > 0 {
		tags.Set(types.FieldTotalTracks, strconv.Itoa(album.TrackCount))
	}

	if nil != o.TotalTracks {
		tags[types.FieldTotalTracks] = strconv.Itoa(*o.TotalTracks)
	}

	if nil != o.TotalDiscs {
		tags[types.FieldTotalDiscs] = strconv.Itoa(*o.TotalDiscs)
	}

	return tags
}

// PositionPair renders a "number/total" pair, degrading to the bare number
// when no total is known.
func PositionPair(tags types.TagSet, number, total types.TagField) string {
	n := tags.Get(number)
	if n == "" {
		return ""
	}

	if t := tags.Get(total); t != "" {
		return fmt.Sprintf("%s/%s", n, t)
	}

	return n
}

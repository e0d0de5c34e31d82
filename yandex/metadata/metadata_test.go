package metadata_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/yamdl/yandex/metadata"
	"github.com/xeptore/yamdl/yandex/types"
)

func newTrack() *types.Track {
	//nolint:exhaustruct
	return &types.Track{
		ID:         "42",
		Title:      "Song",
		Version:    "Remastered",
		Artists:    []types.Artist{{ID: "1", Name: "First"}, {ID: "2", Name: "Second"}},
		Year:       2001,
		Genre:      "pop",
		DurationMS: 215999,
		Albums: []types.AlbumRef{
			{
				ID:            "7",
				Title:         "Album",
				Artists:       []types.Artist{{ID: "1", Name: "First"}},
				Year:          2002,
				Genre:         "rock",
				TrackCount:    12,
				TrackPosition: &types.TrackPosition{Index: 3, Volume: 2},
			},
		},
	}
}

func TestExtractPrecedence(t *testing.T) {
	t.Parallel()

	e := metadata.NewExtractor(zerolog.Nop(), nil)
	tags := e.Extract(newTrack(), metadata.Overrides{}) //nolint:exhaustruct

	assert.Exactly(t, "Song", tags.Get(types.FieldTitle))
	assert.Exactly(t, "First, Second", tags.Get(types.FieldArtist))
	assert.Exactly(t, "Album", tags.Get(types.FieldAlbum))
	assert.Exactly(t, "First", tags.Get(types.FieldAlbumArtist))
	// Album-level values win over track-level values.
	assert.Exactly(t, "2002", tags.Get(types.FieldYear))
	assert.Exactly(t, "rock", tags.Get(types.FieldGenre))
	assert.Exactly(t, "3", tags.Get(types.FieldTrackNumber))
	assert.Exactly(t, "2", tags.Get(types.FieldDiscNumber))
	assert.Exactly(t, "12", tags.Get(types.FieldTotalTracks))
	assert.Exactly(t, "Remastered", tags.Get(types.FieldVersion))
	// Milliseconds truncate to whole seconds.
	assert.Exactly(t, "215", tags.Get(types.FieldDuration))
}

func TestExtractOverridesAlwaysWin(t *testing.T) {
	t.Parallel()

	var (
		albumName   = "Compilation"
		totalTracks = 30
		totalDiscs  = 3
	)

	e := metadata.NewExtractor(zerolog.Nop(), nil)
	tags := e.Extract(newTrack(), metadata.Overrides{
		AlbumName:   &albumName,
		TotalTracks: &totalTracks,
		TotalDiscs:  &totalDiscs,
	})

	assert.Exactly(t, "Compilation", tags.Get(types.FieldAlbum))
	assert.Exactly(t, "30", tags.Get(types.FieldTotalTracks))
	assert.Exactly(t, "3", tags.Get(types.FieldTotalDiscs))
}

func TestExtractAbsentFieldsStayAbsent(t *testing.T) {
	t.Parallel()

	track := &types.Track{ID: "42", Title: "Song"} //nolint:exhaustruct

	e := metadata.NewExtractor(zerolog.Nop(), nil)
	tags := e.Extract(track, metadata.Overrides{}) //nolint:exhaustruct

	assert.True(t, tags.Has(types.FieldTitle))
	assert.False(t, tags.Has(types.FieldArtist))
	assert.False(t, tags.Has(types.FieldAlbum))
	assert.False(t, tags.Has(types.FieldYear))
	assert.False(t, tags.Has(types.FieldGenre))
	assert.False(t, tags.Has(types.FieldVersion))
	assert.False(t, tags.Has(types.FieldDuration))
	assert.False(t, tags.Has(types.FieldTotalDiscs))

	for field, v := range tags {
		assert.NotEmpty(t, v, "field %s must not carry an empty value", field)
	}
}

func TestExtractTrackPositionFallback(t *testing.T) {
	t.Parallel()

	//nolint:exhaustruct
	track := &types.Track{
		ID:       "42",
		Title:    "Song",
		Position: &types.TrackPosition{Index: 5, Volume: 1},
	}

	e := metadata.NewExtractor(zerolog.Nop(), nil)
	tags := e.Extract(track, metadata.Overrides{}) //nolint:exhaustruct

	assert.Exactly(t, "5", tags.Get(types.FieldTrackNumber))
	assert.Exactly(t, "1", tags.Get(types.FieldDiscNumber))
}

func TestPositionPair(t *testing.T) {
	t.Parallel()

	tags := types.TagSet{
		types.FieldTrackNumber: "3",
		types.FieldTotalTracks: "12",
		types.FieldDiscNumber:  "1",
	}

	assert.Exactly(t, "3/12", metadata.PositionPair(tags, types.FieldTrackNumber, types.FieldTotalTracks))
	assert.Exactly(t, "1", metadata.PositionPair(tags, types.FieldDiscNumber, types.FieldTotalDiscs))
	assert.Exactly(t, "", metadata.PositionPair(tags, types.FieldTotalDiscs, types.FieldDiscNumber))
}

func TestExtractGenreObjectSpelling(t *testing.T) {
	t.Parallel()

	track := newTrack()
	track.Albums[0].Genre = ""
	track.Genre = "jazz"

	e := metadata.NewExtractor(zerolog.Nop(), nil)
	tags := e.Extract(track, metadata.Overrides{}) //nolint:exhaustruct

	require.True(t, tags.Has(types.FieldGenre))
	assert.Exactly(t, "jazz", tags.Get(types.FieldGenre))
}

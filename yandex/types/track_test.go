package types_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/yamdl/yandex/types"
)

func TestTrackDecoding(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"id": 12345,
		"title": "Song",
		"durationMs": 180000,
		"coverUri": "avatars.example/get-music/1/2%%",
		"artists": [{"id": "1", "name": "First"}, {"id": 2, "name": "Second"}],
		"genre": {"name": "rock"},
		"albums": [{"id": 7, "title": "Album", "genre": "pop", "trackCount": 10,
			"trackPosition": {"index": 3, "volume": 1}}]
	}`)

	var track types.Track
	require.NoError(t, json.Unmarshal(body, &track))

	assert.Exactly(t, types.ID("12345"), track.ID)
	assert.Exactly(t, types.Genre("rock"), track.Genre)
	assert.Exactly(t, "First, Second", track.ArtistNames())

	require.Len(t, track.Albums, 1)
	assert.Exactly(t, types.Genre("pop"), track.Albums[0].Genre)
	require.NotNil(t, track.Albums[0].TrackPosition)
	assert.Exactly(t, 3, track.Albums[0].TrackPosition.Index)
}

func TestAlbumTotals(t *testing.T) {
	t.Parallel()

	//nolint:exhaustruct
	album := types.Album{
		Volumes: [][]types.Track{
			{{ID: "1"}, {ID: "2"}},
			{{ID: "3"}},
		},
	}

	assert.Exactly(t, 3, album.TotalTracks())
	assert.Exactly(t, 2, album.TotalDiscs())
	assert.False(t, album.IsSingle())

	single := types.Album{Volumes: [][]types.Track{{{ID: "1"}}}} //nolint:exhaustruct
	assert.True(t, single.IsSingle())
}

func TestJoinArtistNamesSkipsEmpty(t *testing.T) {
	t.Parallel()

	got := types.JoinArtistNames([]types.Artist{
		{ID: "1", Name: "First"},
		{ID: "2", Name: ""},
		{ID: "3", Name: "Third"},
	})
	assert.Exactly(t, "First, Third", got)
}

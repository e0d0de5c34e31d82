package downloader

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/yamdl/yandex/types"
)

type stubCatalog struct {
	Catalog
	tracks map[string]*types.Track
}

func (s *stubCatalog) Track(_ context.Context, id string) (*types.Track, error) {
	if t, ok := s.tracks[id]; ok {
		return t, nil
	}

	return nil, errors.New("stub: track not found")
}

func TestPlaylistJobsIsolatesItemFailures(t *testing.T) {
	t.Parallel()

	inline := &types.Track{ID: "1", Title: "Inline"} //nolint:exhaustruct

	catalog := &stubCatalog{
		Catalog: nil,
		tracks: map[string]*types.Track{
			"2:20": {ID: "2", Title: "Fetched"}, //nolint:exhaustruct
		},
	}

	//nolint:exhaustruct
	playlist := &types.Playlist{
		Title: "Mixed",
		Tracks: []types.PlaylistItem{
			{ID: "1", Track: inline},
			{ID: "2", AlbumID: "20", Track: nil},
			{ID: "3", AlbumID: "30", Track: nil}, // unknown to the stub
		},
	}

	d := &Downloader{catalog: catalog} //nolint:exhaustruct
	sum := &Summary{}                  //nolint:exhaustruct

	jobs := d.playlistJobs(context.Background(), zerolog.Nop(), playlist, "/music/Mixed", sum)

	require.Len(t, jobs, 2)
	assert.Exactly(t, "Inline", jobs[0].track.Title)
	assert.Exactly(t, "Fetched", jobs[1].track.Title)
	assert.Exactly(t, "/music/Mixed", jobs[0].outDir)

	assert.Exactly(t, 1, sum.Failed)
	require.Len(t, sum.Failures, 1)
	assert.Exactly(t, "track 3:30", sum.Failures[0].Entity)
}

package downloader

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/xeptore/yamdl/fsutil"
	"github.com/xeptore/yamdl/yandex/metadata"
	"github.com/xeptore/yamdl/yandex/types"
)

const singlesDirName = "Singles & Other Tracks"

// artist downloads the artist's whole discography: every direct album into
// its own directory, with single-track albums and standalone tracks pooled
// under a shared directory. Per-album failures are isolated.
func (d *Downloader) artist(ctx context.Context, logger zerolog.Logger, id string, sum *Summary) error {
	artist, err := d.catalog.Artist(ctx, id)
	if nil != err {
		return fmt.Errorf("failed to get artist %s: %w", id, err)
	}

	artistDir := filepath.Join(d.conf.Dir, "artists", fsutil.SanitizeFileName(artist.Name))
	singlesDir := filepath.Join(artistDir, singlesDirName)

	albums, err := d.catalog.ArtistDirectAlbums(ctx, id)
	if nil != err {
		return fmt.Errorf("failed to get albums of artist %s: %w", id, err)
	}

	downloaded := make(map[types.ID]struct{})
	for _, summary := range albums {
		album, err := d.catalog.AlbumWithTracks(ctx, summary.ID.String())
		if nil != err {
			logger.Error().Err(err).Str("album_id", summary.ID.String()).Msg("Failed to get artist album. Skipping.")
			sum.fail("album "+summary.Title, err)

			continue
		}

		jobs := albumJobs(album, artistDir, singlesDir)
		for _, j := range jobs {
			downloaded[j.track.ID] = struct{}{}
		}

		d.runJobs(ctx, logger, "Album: "+album.Title, jobs, sum)
	}

	tracks, err := d.catalog.ArtistTracks(ctx, id)
	if nil != err {
		logger.Error().Err(err).Str("artist_id", id).Msg("Failed to list artist tracks")
		sum.fail("tracks of artist "+artist.Name, err)

		return nil
	}

	var jobs []job
	for i := range tracks {
		if _, ok := downloaded[tracks[i].ID]; ok {
			continue
		}

		jobs = append(jobs, job{
			track:     &tracks[i],
			outDir:    singlesDir,
			overrides: metadata.Overrides{}, //nolint:exhaustruct
		})
	}

	d.runJobs(ctx, logger, "Artist: "+artist.Name, jobs, sum)

	return nil
}

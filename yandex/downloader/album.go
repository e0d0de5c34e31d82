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

func (d *Downloader) album(ctx context.Context, logger zerolog.Logger, id string, sum *Summary) error {
	album, err := d.catalog.AlbumWithTracks(ctx, id)
	if nil != err {
		return fmt.Errorf("failed to get album %s: %w", id, err)
	}

	jobs := albumJobs(album, d.conf.Dir, d.conf.Dir)
	d.runJobs(ctx, logger, "Album: "+album.Title, jobs, sum)

	return nil
}

// albumJobs lays out an album's tracks: single-track albums land directly in
// singlesDir while multi-track albums get their own directory under rootDir.
// Every track carries the album's title and totals as its album context.
func albumJobs(album *types.Album, rootDir, singlesDir string) []job {
	outDir := singlesDir
	if !album.IsSingle() {
		outDir = filepath.Join(rootDir, fsutil.SanitizeFileName(album.Title))
	}

	var (
		totalTracks = album.TotalTracks()
		totalDiscs  = album.TotalDiscs()
	)

	jobs := make([]job, 0, totalTracks)
	for _, volume := range album.Volumes {
		for i := range volume {
			jobs = append(jobs, job{
				track:  &volume[i],
				outDir: outDir,
				overrides: metadata.Overrides{
					AlbumName:   &album.Title,
					TotalTracks: &totalTracks,
					TotalDiscs:  &totalDiscs,
				},
			})
		}
	}

	return jobs
}

package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/xeptore/yamdl/fsutil"
	"github.com/xeptore/yamdl/yandex/lossless"
	"github.com/xeptore/yamdl/yandex/metadata"
	"github.com/xeptore/yamdl/yandex/tag"
	"github.com/xeptore/yamdl/yandex/types"
)

// job carries one track through the acquisition pipeline together with its
// destination directory and album context.
type job struct {
	track     *types.Track
	outDir    string
	overrides metadata.Overrides
}

func (j job) name() string {
	if a := j.track.ArtistNames(); a != "" {
		return a + " - " + j.track.Title
	}

	return j.track.Title
}

func (d *Downloader) singleTrack(ctx context.Context, logger zerolog.Logger, id string, sum *Summary) error {
	track, err := d.catalog.Track(ctx, id)
	if nil != err {
		return fmt.Errorf("failed to get track %s: %w", id, err)
	}

	jobs := []job{{track: track, outDir: d.conf.Dir, overrides: metadata.Overrides{}}} //nolint:exhaustruct
	d.runJobs(ctx, logger, "Track: "+track.Title, jobs, sum)

	return nil
}

// downloadTrack runs the full acquisition pipeline for one track and returns
// the final file path. All intermediate artifacts are removed on failure.
func (d *Downloader) downloadTrack(ctx context.Context, logger zerolog.Logger, j job) (finalPath string, err error) {
	if d.timeouts.DownloadTrack > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(d.timeouts.DownloadTrack)*time.Second)
		defer cancel()
	}

	tmpFile, err := os.CreateTemp("", "yamdl-*")
	if nil != err {
		return "", fmt.Errorf("failed to create temporary track file: %v", err)
	}
	tmpPath := tmpFile.Name()
	if err := tmpFile.Close(); nil != err {
		return "", fmt.Errorf("failed to close temporary track file: %v", err)
	}

	moved := false
	defer func() {
		if moved {
			return
		}
		if removeErr := os.Remove(tmpPath); nil != removeErr && !errors.Is(removeErr, os.ErrNotExist) {
			err = errors.Join(err, fmt.Errorf("failed to remove temporary track file: %v", removeErr))
		}
	}()

	ext, err := d.acquireAudio(ctx, logger, j.track, tmpPath)
	if nil != err {
		return "", err
	}

	format, err := tag.DetectFormat(tmpPath)
	if nil != err {
		return "", fmt.Errorf("failed to detect audio format: %v", err)
	}
	if ext == "" {
		ext = format.Ext()
	}

	tags := d.meta.Extract(j.track, j.overrides)
	cover := d.fetchCover(ctx, logger, j.track)

	if err := tag.Write(tmpPath, format, tags, cover); nil != err {
		return "", fmt.Errorf("failed to tag track file: %w", err)
	}

	if err := fsutil.EnsureDir(j.outDir); nil != err {
		return "", err
	}

	fileName := fsutil.SanitizeFileName(j.name()) + ext
	finalPath = filepath.Join(j.outDir, fileName)
	if err := fsutil.Move(tmpPath, finalPath); nil != err {
		return "", err
	}
	moved = true

	logger.Info().Str("path", finalPath).Msg("Track downloaded")

	return finalPath, nil
}

// acquireAudio fetches the track's audio into dst and reports the file
// extension when the transport dictates one. The lossless transport is tried
// first on the lossless tier and degrades to the standard transport when
// refused.
func (d *Downloader) acquireAudio(
	ctx context.Context,
	logger zerolog.Logger,
	track *types.Track,
	dst string,
) (ext string, err error) {
	id := track.ID.String()

	candidates, err := d.catalog.DownloadInfo(ctx, id)
	if nil != err {
		return "", fmt.Errorf("failed to get download info: %w", err)
	}

	decision := Negotiate(candidates, d.quality)

	candidate := decision.Candidate
	if decision.UseLossless {
		codec, err := d.lossless.Fetch(ctx, id, dst)
		switch {
		case nil == err:
			return lossless.Ext(codec), nil
		case errors.Is(err, lossless.ErrDecryptFailed):
			return "", err
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return "", err
		default:
			logger.Warn().Err(err).Str("track_id", id).Msg("Lossless transport refused. Degrading to standard transport.")
			candidate = Degraded(candidates)
		}
	}

	if nil == candidate {
		return "", ErrNoCodecAvailable
	}

	directURL, err := d.catalog.DirectURL(ctx, candidate.InfoURL)
	if nil != err {
		return "", fmt.Errorf("failed to get direct URL: %w", err)
	}

	if err := d.fetchURL(ctx, directURL, dst); nil != err {
		return "", err
	}

	return "", nil
}

func (d *Downloader) fetchURL(ctx context.Context, rawURL, dst string) (err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if nil != err {
		return fmt.Errorf("failed to create download request: %w", err)
	}

	client := http.Client{} //nolint:exhaustruct
	resp, err := client.Do(req)
	if nil != err {
		return fmt.Errorf("failed to send download request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); nil != closeErr {
			err = errors.Join(err, fmt.Errorf("failed to close download response body: %v", closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected download response status code: %d", resp.StatusCode)
	}

	file, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if nil != err {
		return fmt.Errorf("failed to create track file: %v", err)
	}
	defer func() {
		if closeErr := file.Close(); nil != closeErr {
			err = errors.Join(err, fmt.Errorf("failed to close track file: %v", closeErr))
		}
	}()

	if _, err := io.Copy(file, resp.Body); nil != err {
		return fmt.Errorf("failed to write track file: %w", err)
	}

	return nil
}

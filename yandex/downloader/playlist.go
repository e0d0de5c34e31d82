package downloader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/xeptore/yamdl/fsutil"
	"github.com/xeptore/yamdl/httputil"
	"github.com/xeptore/yamdl/yandex/metadata"
	"github.com/xeptore/yamdl/yandex/types"
)

const playlistResolveURLFormat = "https://api.music.yandex.ru/playlist/%s"

func (d *Downloader) playlist(ctx context.Context, logger zerolog.Logger, link types.Link, sum *Summary) error {
	owner, kind := link.Owner, link.ID
	if link.UID != "" {
		var err error
		owner, kind, err = d.resolvePlaylistUID(ctx, logger, link.UID)
		if nil != err {
			return err
		}
	}

	playlist, err := d.catalog.Playlist(ctx, owner, kind)
	if nil != err {
		return fmt.Errorf("failed to get playlist %s/%s: %w", owner, kind, err)
	}

	outDir := d.conf.Dir
	if playlist.Title != "" {
		outDir = filepath.Join(d.conf.Dir, fsutil.SanitizeFileName(playlist.Title))
	}

	jobs := d.playlistJobs(ctx, logger, playlist, outDir, sum)
	d.runJobs(ctx, logger, "Playlist: "+playlist.Title, jobs, sum)

	return nil
}

// playlistJobs materializes the playlist items into jobs. Items the catalog
// inlined the track entity for are used as-is; the rest are fetched one by
// one, and a failing item is recorded and skipped without poisoning its
// siblings.
func (d *Downloader) playlistJobs(
	ctx context.Context,
	logger zerolog.Logger,
	playlist *types.Playlist,
	outDir string,
	sum *Summary,
) []job {
	jobs := make([]job, 0, len(playlist.Tracks))
	for _, item := range playlist.Tracks {
		track := item.Track
		if nil == track {
			id := item.ID.String()
			if item.AlbumID != "" {
				id = fmt.Sprintf("%s:%s", item.ID, item.AlbumID)
			}

			fetched, err := d.catalog.Track(ctx, id)
			if nil != err {
				logger.Error().Err(err).Str("track_id", id).Msg("Failed to get playlist track. Skipping.")
				sum.fail("track "+id, err)

				continue
			}
			track = fetched
		}

		jobs = append(jobs, job{track: track, outDir: outDir, overrides: metadata.Overrides{}}) //nolint:exhaustruct
	}

	return jobs
}

// resolvePlaylistUID resolves an unscoped playlist identifier to its owner
// and kind pair. Transient network failures are retried with exponential
// backoff a bounded number of times; a rejected identifier is retried once
// more with the personal-scope prefix before giving up.
func (d *Downloader) resolvePlaylistUID(
	ctx context.Context,
	logger zerolog.Logger,
	uid string,
) (owner string, kind string, err error) {
	candidates := []string{uid, "lk." + uid}

	for _, candidate := range candidates {
		var resolved bool
		err := retry.Do(
			ctx,
			retry.WithMaxRetries(5, retry.NewExponential(2*time.Second)),
			func(ctx context.Context) error {
				o, k, err := d.resolveAttempt(ctx, candidate)
				if nil != err {
					if errors.Is(err, errResolveRejected) {
						return err
					}

					logger.Warn().Err(err).Str("uid", candidate).Msg("Playlist resolution attempt failed. Retrying.")

					return retry.RetryableError(err)
				}

				owner, kind, resolved = o, k, true

				return nil
			},
		)
		if resolved {
			return owner, kind, nil
		}
		if nil != err && !errors.Is(err, errResolveRejected) {
			return "", "", fmt.Errorf("%w: %v", ErrResolutionFailed, err)
		}
	}

	return "", "", ErrResolutionFailed
}

var errResolveRejected = errors.New("playlist identifier rejected")

func (d *Downloader) resolveAttempt(ctx context.Context, uid string) (owner string, kind string, err error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		fmt.Sprintf(playlistResolveURLFormat, uid),
		nil,
	)
	if nil != err {
		return "", "", fmt.Errorf("failed to create playlist resolution request: %w", err)
	}

	req.Header.Set("Authorization", "OAuth "+d.token)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	client := http.Client{ //nolint:exhaustruct
		Timeout: time.Duration(d.timeouts.ResolvePlaylist) * time.Second,
	}
	resp, err := client.Do(req)
	if nil != err {
		return "", "", fmt.Errorf("failed to send playlist resolution request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); nil != closeErr {
			err = errors.Join(err, fmt.Errorf("failed to close playlist resolution response body: %v", closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", "", errResolveRejected
	}

	respBody, err := httputil.ReadResponseBody(resp)
	if nil != err {
		return "", "", fmt.Errorf("failed to read playlist resolution response body: %v", err)
	}

	var body struct {
		Result struct {
			UID  json.Number `json:"uid"`
			Kind json.Number `json:"kind"`
		} `json:"result"`
	}
	if err := json.Unmarshal(respBody, &body); nil != err {
		return "", "", fmt.Errorf("failed to decode playlist resolution response body: %v", err)
	}

	if body.Result.UID.String() == "" || body.Result.Kind.String() == "" {
		return "", "", errResolveRejected
	}

	return body.Result.UID.String(), body.Result.Kind.String(), nil
}

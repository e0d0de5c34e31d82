package downloader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/xeptore/yamdl/cache"
	"github.com/xeptore/yamdl/httputil"
	"github.com/xeptore/yamdl/yandex/types"
)

const coverSize = "200x200"

// fetchCover downloads the track's cover art. Covers are best effort: any
// failure is logged and a nil cover is returned so the track proceeds
// without embedded art.
func (d *Downloader) fetchCover(ctx context.Context, logger zerolog.Logger, track *types.Track) []byte {
	if track.CoverURI == "" {
		return nil
	}

	coverURL := "https://" + strings.Replace(track.CoverURI, "%%", coverSize, 1)

	cached, err := d.covers.Fetch(
		coverURL,
		cache.DefaultCoverTTL,
		func() ([]byte, error) { return d.downloadCover(ctx, coverURL) },
	)
	if nil != err {
		logger.Warn().Err(err).Str("url", coverURL).Msg("Failed to download cover. Proceeding without it.")

		return nil
	}

	return cached.Value()
}

func (d *Downloader) downloadCover(ctx context.Context, coverURL string) (b []byte, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, coverURL, nil)
	if nil != err {
		return nil, fmt.Errorf("failed to create download cover request: %w", err)
	}

	client := http.Client{ //nolint:exhaustruct
		Timeout: time.Duration(d.timeouts.DownloadCover) * time.Second,
	}
	resp, err := client.Do(req)
	if nil != err {
		return nil, fmt.Errorf("failed to send download cover request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); nil != closeErr {
			err = errors.Join(err, fmt.Errorf("failed to close download cover response body: %v", closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected download cover response status code: %d", resp.StatusCode)
	}

	respBody, err := httputil.ReadResponseBody(resp)
	if nil != err {
		return nil, fmt.Errorf("failed to read download cover response body: %v", err)
	}

	if mime := mimetype.Detect(respBody); !mime.Is("image/jpeg") {
		return nil, fmt.Errorf("unexpected cover content type: %s", mime.String())
	}

	return respBody, nil
}

// Package catalog is a typed client of the Yandex Music catalog API.
package catalog

import (
	"context"
	"crypto/md5" //nolint:gosec
	"encoding/hex"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/xeptore/yamdl/config"
	"github.com/xeptore/yamdl/httputil"
	"github.com/xeptore/yamdl/yandex/types"
)

const (
	baseURL   = "https://api.music.yandex.net"
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	trackPathFormat              = "/tracks/%s"
	albumWithTracksPathFormat    = "/albums/%s/with-tracks"
	userPlaylistPathFormat       = "/users/%s/playlists/%s"
	artistPathFormat             = "/artists/%s"
	artistDirectAlbumsPathFormat = "/artists/%s/direct-albums"
	artistTracksPathFormat       = "/artists/%s/tracks"
	trackDownloadInfoPathFormat  = "/tracks/%s/download-info"

	pageSize = 100

	// directLinkSalt participates in the md5 signature of derived direct
	// download URLs.
	directLinkSalt = "XGRlBW9FXlekgbPrRHuSiA"
)

var (
	ErrNotFound     = errors.New("catalog entity not found")
	ErrUnauthorized = errors.New("catalog rejected the access token")
)

type Client struct {
	token   string
	timeout time.Duration
	limiter *rate.Limiter
	logger  zerolog.Logger
}

func New(logger zerolog.Logger, conf config.Yandex) *Client {
	return &Client{
		token:   conf.Token,
		timeout: time.Duration(conf.Timeouts.CatalogRequest) * time.Second,
		limiter: rate.NewLimiter(rate.Limit(10), 10),
		logger:  logger,
	}
}

func (c *Client) get(ctx context.Context, rawURL string) (b []byte, err error) {
	if err := c.limiter.Wait(ctx); nil != err {
		return nil, fmt.Errorf("failed to wait for catalog rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if nil != err {
		return nil, fmt.Errorf("failed to create catalog request: %w", err)
	}

	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("User-Agent", userAgent)

	client := http.Client{Timeout: c.timeout} //nolint:exhaustruct
	resp, err := client.Do(req)
	if nil != err {
		return nil, fmt.Errorf("failed to send catalog request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); nil != closeErr {
			err = errors.Join(err, fmt.Errorf("failed to close catalog response body: %v", closeErr))
		}
	}()

	switch code := resp.StatusCode; code {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		c.logger.Error().Int("status_code", code).Str("url", rawURL).Msg("Unexpected catalog response status code")
		return nil, fmt.Errorf("unexpected catalog response status code: %d", code)
	}

	respBody, err := httputil.ReadResponseBody(resp)
	if nil != err {
		return nil, fmt.Errorf("failed to read catalog response body: %v", err)
	}

	return respBody, nil
}

func (c *Client) Track(ctx context.Context, id string) (*types.Track, error) {
	respBody, err := c.get(ctx, baseURL+fmt.Sprintf(trackPathFormat, url.PathEscape(id)))
	if nil != err {
		return nil, fmt.Errorf("failed to get track %s: %w", id, err)
	}

	var body struct {
		Result []types.Track `json:"result"`
	}
	if err := json.Unmarshal(respBody, &body); nil != err {
		return nil, fmt.Errorf("failed to decode track response body: %v", err)
	}

	if len(body.Result) == 0 {
		return nil, fmt.Errorf("track %s: %w", id, ErrNotFound)
	}

	return &body.Result[0], nil
}

func (c *Client) AlbumWithTracks(ctx context.Context, id string) (*types.Album, error) {
	respBody, err := c.get(ctx, baseURL+fmt.Sprintf(albumWithTracksPathFormat, url.PathEscape(id)))
	if nil != err {
		return nil, fmt.Errorf("failed to get album %s: %w", id, err)
	}

	var body struct {
		Result types.Album `json:"result"`
	}
	if err := json.Unmarshal(respBody, &body); nil != err {
		return nil, fmt.Errorf("failed to decode album response body: %v", err)
	}

	return &body.Result, nil
}

func (c *Client) Playlist(ctx context.Context, owner, kind string) (*types.Playlist, error) {
	respBody, err := c.get(
		ctx,
		baseURL+fmt.Sprintf(userPlaylistPathFormat, url.PathEscape(owner), url.PathEscape(kind)),
	)
	if nil != err {
		return nil, fmt.Errorf("failed to get playlist %s/%s: %w", owner, kind, err)
	}

	var body struct {
		Result types.Playlist `json:"result"`
	}
	if err := json.Unmarshal(respBody, &body); nil != err {
		return nil, fmt.Errorf("failed to decode playlist response body: %v", err)
	}

	return &body.Result, nil
}

func (c *Client) Artist(ctx context.Context, id string) (*types.ArtistInfo, error) {
	respBody, err := c.get(ctx, baseURL+fmt.Sprintf(artistPathFormat, url.PathEscape(id)))
	if nil != err {
		return nil, fmt.Errorf("failed to get artist %s: %w", id, err)
	}

	var body struct {
		Result struct {
			Artist types.ArtistInfo `json:"artist"`
		} `json:"result"`
	}
	if err := json.Unmarshal(respBody, &body); nil != err {
		return nil, fmt.Errorf("failed to decode artist response body: %v", err)
	}

	return &body.Result.Artist, nil
}

// ArtistDirectAlbums pages over the albums the artist is a primary artist of.
func (c *Client) ArtistDirectAlbums(ctx context.Context, id string) ([]types.AlbumSummary, error) {
	var albums []types.AlbumSummary
	for page := 0; ; page++ {
		pageURL := fmt.Sprintf(
			"%s%s?page=%d&page-size=%d",
			baseURL,
			fmt.Sprintf(artistDirectAlbumsPathFormat, url.PathEscape(id)),
			page,
			pageSize,
		)
		respBody, err := c.get(ctx, pageURL)
		if nil != err {
			return nil, fmt.Errorf("failed to get artist %s albums page %d: %w", id, page, err)
		}

		var body struct {
			Result struct {
				Albums []types.AlbumSummary `json:"albums"`
				Pager  struct {
					Total int `json:"total"`
				} `json:"pager"`
			} `json:"result"`
		}
		if err := json.Unmarshal(respBody, &body); nil != err {
			return nil, fmt.Errorf("failed to decode artist albums response body: %v", err)
		}

		if len(body.Result.Albums) == 0 {
			break
		}
		albums = append(albums, body.Result.Albums...)

		if len(albums) >= body.Result.Pager.Total {
			break
		}
	}

	return albums, nil
}

// ArtistTracks pages over all tracks attributed to the artist.
func (c *Client) ArtistTracks(ctx context.Context, id string) ([]types.Track, error) {
	var tracks []types.Track
	for page := 0; ; page++ {
		pageURL := fmt.Sprintf(
			"%s%s?page=%d&page-size=%d",
			baseURL,
			fmt.Sprintf(artistTracksPathFormat, url.PathEscape(id)),
			page,
			pageSize,
		)
		respBody, err := c.get(ctx, pageURL)
		if nil != err {
			return nil, fmt.Errorf("failed to get artist %s tracks page %d: %w", id, page, err)
		}

		var body struct {
			Result struct {
				Tracks []types.Track `json:"tracks"`
				Pager  struct {
					Total int `json:"total"`
				} `json:"pager"`
			} `json:"result"`
		}
		if err := json.Unmarshal(respBody, &body); nil != err {
			return nil, fmt.Errorf("failed to decode artist tracks response body: %v", err)
		}

		if len(body.Result.Tracks) == 0 {
			break
		}
		tracks = append(tracks, body.Result.Tracks...)

		if len(tracks) >= body.Result.Pager.Total {
			break
		}
	}

	return tracks, nil
}

// DownloadInfo lists the downloadable codec variants of a track, previews
// excluded.
func (c *Client) DownloadInfo(ctx context.Context, trackID string) ([]types.CodecCandidate, error) {
	respBody, err := c.get(ctx, baseURL+fmt.Sprintf(trackDownloadInfoPathFormat, url.PathEscape(trackID)))
	if nil != err {
		return nil, fmt.Errorf("failed to get download info of track %s: %w", trackID, err)
	}

	var body struct {
		Result []struct {
			Codec           string `json:"codec"`
			BitrateInKbps   int    `json:"bitrateInKbps"`
			DownloadInfoURL string `json:"downloadInfoUrl"`
			Preview         bool   `json:"preview"`
		} `json:"result"`
	}
	if err := json.Unmarshal(respBody, &body); nil != err {
		return nil, fmt.Errorf("failed to decode download info response body: %v", err)
	}

	candidates := make([]types.CodecCandidate, 0, len(body.Result))
	for _, v := range body.Result {
		if v.Preview {
			continue
		}
		candidates = append(candidates, types.CodecCandidate{
			Codec:       v.Codec,
			BitrateKbps: v.BitrateInKbps,
			InfoURL:     v.DownloadInfoURL,
		})
	}

	return candidates, nil
}

// DirectURL derives a signed direct download URL from a candidate's
// retrieval handle.
func (c *Client) DirectURL(ctx context.Context, infoURL string) (string, error) {
	respBody, err := c.get(ctx, infoURL)
	if nil != err {
		return "", fmt.Errorf("failed to get direct link info: %w", err)
	}

	var info struct {
		Host string `xml:"host"`
		Path string `xml:"path"`
		S    string `xml:"s"`
		TS   string `xml:"ts"`
	}
	if err := xml.Unmarshal(respBody, &info); nil != err {
		return "", fmt.Errorf("failed to decode direct link info response body: %v", err)
	}

	if len(info.Path) < 2 {
		return "", fmt.Errorf("unexpected direct link info path: %q", info.Path)
	}

	sum := md5.Sum([]byte(directLinkSalt + info.Path[1:] + info.S)) //nolint:gosec
	sign := hex.EncodeToString(sum[:])

	return fmt.Sprintf("https://%s/get-mp3/%s/%s%s", info.Host, sign, info.TS, info.Path), nil
}

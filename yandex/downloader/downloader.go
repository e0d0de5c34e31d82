// Package downloader orchestrates track acquisition: catalog traversal,
// codec negotiation, audio retrieval, tagging, and final placement.
package downloader

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/xeptore/yamdl/cache"
	"github.com/xeptore/yamdl/config"
	"github.com/xeptore/yamdl/yandex/metadata"
	"github.com/xeptore/yamdl/yandex/types"
)

var (
	// ErrNoCodecAvailable is reported for tracks the catalog advertises no
	// usable codec variant for.
	ErrNoCodecAvailable = errors.New("no codec variant available for track")
	// ErrResolutionFailed is reported when an unscoped playlist identifier
	// cannot be resolved to an owner and kind pair.
	ErrResolutionFailed = errors.New("failed to resolve playlist identifier")
)

// Catalog is the slice of the catalog client the downloader consumes.
type Catalog interface {
	Track(ctx context.Context, id string) (*types.Track, error)
	AlbumWithTracks(ctx context.Context, id string) (*types.Album, error)
	Playlist(ctx context.Context, owner, kind string) (*types.Playlist, error)
	Artist(ctx context.Context, id string) (*types.ArtistInfo, error)
	ArtistDirectAlbums(ctx context.Context, id string) ([]types.AlbumSummary, error)
	ArtistTracks(ctx context.Context, id string) ([]types.Track, error)
	DownloadInfo(ctx context.Context, trackID string) ([]types.CodecCandidate, error)
	DirectURL(ctx context.Context, infoURL string) (string, error)
}

// LosslessFetcher serves the signed lossless transport.
type LosslessFetcher interface {
	Fetch(ctx context.Context, trackID, dst string) (codec string, err error)
}

type Downloader struct {
	catalog  Catalog
	lossless LosslessFetcher
	covers   *cache.Covers
	meta     *metadata.Extractor
	conf     config.Download
	timeouts config.YandexTimeouts
	quality  types.Quality
	token    string
}

func New(
	conf *config.Config,
	catalog Catalog,
	lossless LosslessFetcher,
	covers *cache.Covers,
	meta *metadata.Extractor,
) (*Downloader, error) {
	quality, err := types.ParseQuality(conf.Download.Quality)
	if nil != err {
		return nil, fmt.Errorf("failed to parse quality tier: %v", err)
	}

	return &Downloader{
		catalog:  catalog,
		lossless: lossless,
		covers:   covers,
		meta:     meta,
		conf:     conf.Download,
		timeouts: conf.Yandex.Timeouts,
		quality:  quality,
		token:    conf.Yandex.Token,
	}, nil
}

// Summary is the per-invocation outcome report. Counting methods are safe
// for concurrent use by download workers.
type Summary struct {
	mu        sync.Mutex
	Succeeded int
	Failed    int
	Failures  []Failure
}

type Failure struct {
	Entity string
	Reason error
}

func (s *Summary) success() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Succeeded++
}

func (s *Summary) fail(entity string, reason error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Failed++
	s.Failures = append(s.Failures, Failure{Entity: entity, Reason: reason})
}

// Download acquires everything the link refers to. Per-track failures are
// isolated and collected into the summary; the returned error is reserved
// for failures that abort the whole invocation.
func (d *Downloader) Download(ctx context.Context, logger zerolog.Logger, link types.Link) (*Summary, error) {
	sum := &Summary{} //nolint:exhaustruct

	switch link.Kind {
	case types.LinkKindTrack:
		if err := d.singleTrack(ctx, logger, link.ID, sum); nil != err {
			return sum, err
		}
	case types.LinkKindAlbum:
		if err := d.album(ctx, logger, link.ID, sum); nil != err {
			return sum, err
		}
	case types.LinkKindPlaylist:
		if err := d.playlist(ctx, logger, link, sum); nil != err {
			return sum, err
		}
	case types.LinkKindArtist:
		if err := d.artist(ctx, logger, link.ID, sum); nil != err {
			return sum, err
		}
	default:
		return sum, fmt.Errorf("unsupported link kind: %s", link.Kind)
	}

	return sum, nil
}

package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/karlseguin/ccache/v3"
	"github.com/rs/zerolog"

	"github.com/xeptore/yamdl/yandex/types"
)

var DefaultCoverTTL = 1 * time.Hour

// Key builds the composite lookup key of a track's extracted tag set. Tracks
// acquired under different album contexts must not share cache entries, so
// the album context participates in the key.
func Key(trackID, albumName string, totalTracks, totalDiscs *int, version string) string {
	num := func(n *int) string {
		if nil == n {
			return ""
		}

		return strconv.Itoa(*n)
	}

	return strings.Join([]string{trackID, albumName, num(totalTracks), num(totalDiscs), version}, "|")
}

type entry struct {
	Metadata types.TagSet `json:"metadata"`
	TS       int64        `json:"ts"`
}

// Metadata is a file-backed store of extracted tag sets with time-based
// expiry. A zero TTL disables expiry. All I/O failures are absorbed and
// logged since the cache only exists to skip redundant extraction work.
type Metadata struct {
	path    string
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]entry
	logger  zerolog.Logger
}

func NewMetadata(logger zerolog.Logger, path string, ttl time.Duration) *Metadata {
	c := &Metadata{
		path:    path,
		ttl:     ttl,
		now:     time.Now,
		mu:      sync.RWMutex{},
		entries: make(map[string]entry),
		logger:  logger,
	}
	c.load()

	return c
}

func (c *Metadata) load() {
	data, err := os.ReadFile(c.path)
	if nil != err {
		if !errors.Is(err, os.ErrNotExist) {
			c.logger.Warn().Err(err).Str("path", c.path).Msg("Failed to read metadata cache file")
		}

		return
	}

	if err := json.Unmarshal(data, &c.entries); nil != err {
		c.logger.Warn().Err(err).Str("path", c.path).Msg("Metadata cache file is corrupt. Starting empty.")
		c.entries = make(map[string]entry)
	}
}

func (c *Metadata) persist() {
	data, err := json.Marshal(c.entries)
	if nil != err {
		c.logger.Warn().Err(err).Msg("Failed to encode metadata cache")

		return
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); nil != err {
		c.logger.Warn().Err(err).Str("path", c.path).Msg("Failed to create metadata cache directory")

		return
	}

	if err := os.WriteFile(c.path, data, 0o644); nil != err {
		c.logger.Warn().Err(err).Str("path", c.path).Msg("Failed to write metadata cache file")
	}
}

func (c *Metadata) expired(e entry) bool {
	if c.ttl == 0 {
		return false
	}

	return c.now().Unix()-e.TS > int64(c.ttl.Seconds())
}

// Get returns the cached tag set for key. Expired entries are purged on
// lookup and reported as misses.
func (c *Metadata) Get(key string) (types.TagSet, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if c.expired(e) {
		c.mu.Lock()
		if e, ok := c.entries[key]; ok && c.expired(e) {
			delete(c.entries, key)
			c.persist()
		}
		c.mu.Unlock()

		return nil, false
	}

	return e.Metadata, true
}

func (c *Metadata) Set(key string, tags types.TagSet) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{Metadata: tags, TS: c.now().Unix()}
	c.persist()
}

type Covers struct {
	c   *ccache.Cache[[]byte]
	mux sync.Mutex
}

func NewCovers() *Covers {
	coversCache := ccache.New(
		ccache.Configure[[]byte]().
			MaxSize(100).
			GetsPerPromote(3).
			PercentToPrune(1),
	)

	return &Covers{
		c:   coversCache,
		mux: sync.Mutex{},
	}
}

func (c *Covers) Fetch(
	k string,
	ttl time.Duration,
	fetch func() ([]byte, error),
) (*ccache.Item[[]byte], error) {
	c.mux.Lock()
	defer c.mux.Unlock()

	v, err := c.c.Fetch(k, ttl, fetch)
	if nil != err {
		return nil, fmt.Errorf("fetch cover: %w", err)
	}

	return v, nil
}

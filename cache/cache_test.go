package cache_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/yamdl/cache"
	"github.com/xeptore/yamdl/yandex/types"
)

func TestKeyUniqueness(t *testing.T) {
	t.Parallel()

	one, two := 1, 2
	keys := []string{
		cache.Key("42", "Album", &one, &one, ""),
		cache.Key("42", "Album", &one, &one, "Remix"),
		cache.Key("42", "Album", &two, &one, ""),
		cache.Key("42", "Album", &one, &two, ""),
		cache.Key("42", "Other", &one, &one, ""),
		cache.Key("43", "Album", &one, &one, ""),
		cache.Key("42", "Album", nil, nil, ""),
	}

	seen := make(map[string]struct{})
	for _, k := range keys {
		_, dup := seen[k]
		assert.False(t, dup, "duplicate key: %s", k)
		seen[k] = struct{}{}
	}
}

func TestMetadataRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "metadata.json")
	c := cache.NewMetadata(zerolog.Nop(), path, time.Hour)

	tags := types.TagSet{types.FieldTitle: "Song", types.FieldArtist: "Artist"}
	c.Set("k", tags)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Exactly(t, tags, got)

	// A fresh instance must read the same entries back from disk.
	reloaded := cache.NewMetadata(zerolog.Nop(), path, time.Hour)
	got, ok = reloaded.Get("k")
	require.True(t, ok)
	assert.Exactly(t, tags, got)
}

func TestMetadataMiss(t *testing.T) {
	t.Parallel()

	c := cache.NewMetadata(zerolog.Nop(), filepath.Join(t.TempDir(), "metadata.json"), time.Hour)

	got, ok := c.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestMetadataCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "metadata.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	c := cache.NewMetadata(zerolog.Nop(), path, time.Hour)

	_, ok := c.Get("k")
	assert.False(t, ok)

	// The store must stay usable after discarding the corrupt file.
	c.Set("k", types.TagSet{types.FieldTitle: "Song"})
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Exactly(t, "Song", got.Get(types.FieldTitle))
}

func TestMetadataZeroTTLNeverExpires(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "metadata.json")
	c := cache.NewMetadata(zerolog.Nop(), path, 0)

	c.Set("k", types.TagSet{types.FieldTitle: "Song"})

	_, ok := c.Get("k")
	assert.True(t, ok)
}

func TestCoversFetch(t *testing.T) {
	t.Parallel()

	c := cache.NewCovers()

	calls := 0
	load := func() ([]byte, error) {
		calls++
		return []byte{0xFF, 0xD8}, nil
	}

	item, err := c.Fetch("cover", time.Hour, load)
	require.NoError(t, err)
	assert.Exactly(t, []byte{0xFF, 0xD8}, item.Value())

	// Second fetch must be served from the cache without invoking the loader.
	item, err = c.Fetch("cover", time.Hour, load)
	require.NoError(t, err)
	assert.Exactly(t, []byte{0xFF, 0xD8}, item.Value())
	assert.Exactly(t, 1, calls)
}

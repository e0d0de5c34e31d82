package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/yamdl/yandex/types"
)

func TestMetadataExpiryPurgesOnLookup(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "metadata.json")
	c := NewMetadata(zerolog.Nop(), path, time.Hour)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set("k", types.TagSet{types.FieldTitle: "Song"})

	c.now = func() time.Time { return base.Add(2 * time.Hour) }
	_, ok := c.Get("k")
	assert.False(t, ok)

	// The expired entry must be gone from the persisted file as well.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"k"`)
}

func TestMetadataFreshEntrySurvivesLookup(t *testing.T) {
	t.Parallel()

	c := NewMetadata(zerolog.Nop(), filepath.Join(t.TempDir(), "metadata.json"), time.Hour)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set("k", types.TagSet{types.FieldTitle: "Song"})

	c.now = func() time.Time { return base.Add(59 * time.Minute) }
	_, ok := c.Get("k")
	assert.True(t, ok)
}

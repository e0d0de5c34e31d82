package tag

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header []byte
		want   Format
	}{
		{name: "id3v2", header: []byte("ID3\x04\x00\x00\x00\x00\x00\x00"), want: FormatMP3},
		{name: "mpeg frame sync", header: []byte{0xFF, 0xFB, 0x90, 0x00}, want: FormatMP3},
		{name: "mp4 ftyp", header: []byte{0x00, 0x00, 0x00, 0x20, 'f', 't', 'y', 'p', 'M', '4', 'A', ' '}, want: FormatMP4},
		{name: "flac", header: []byte("fLaC\x00\x00\x00\x22"), want: FormatFLAC},
		{name: "ogg", header: []byte("OggS\x00\x02"), want: FormatOgg},
		{name: "unknown defaults to mp3", header: []byte{0x01, 0x02, 0x03, 0x04}, want: FormatMP3},
		{name: "broken frame sync defaults to mp3", header: []byte{0xFF, 0x1B}, want: FormatMP3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Exactly(t, tt.want, detect(tt.header))
		})
	}
}

func TestDetectFormatShortFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "short")
	require.NoError(t, os.WriteFile(path, []byte("ID3"), 0o644))

	got, err := DetectFormat(path)
	require.NoError(t, err)
	assert.Exactly(t, FormatMP3, got)
}

func TestFormatExt(t *testing.T) {
	t.Parallel()

	assert.Exactly(t, ".mp3", FormatMP3.Ext())
	assert.Exactly(t, ".flac", FormatFLAC.Ext())
	assert.Exactly(t, ".m4a", FormatMP4.Ext())
	assert.Exactly(t, ".ogg", FormatOgg.Ext())
}

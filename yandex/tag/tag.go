// Package tag writes extracted metadata into audio files in place.
package tag

import (
	"errors"
	"fmt"

	"github.com/xeptore/yamdl/yandex/types"
)

const (
	sourceComment = "Downloaded from Yandex Music"
	encoderName   = "yamdl"
)

// ErrUnsupportedFormat is returned for containers no tag writer exists for.
var ErrUnsupportedFormat = errors.New("unsupported audio container format")

// Write embeds tags and the optional JPEG cover into the file at path,
// replacing any tags the file already carries.
func Write(path string, format Format, tags types.TagSet, cover []byte) error {
	switch format {
	case FormatMP3:
		if err := writeMP3(path, tags, cover); nil != err {
			return fmt.Errorf("failed to write mp3 tags: %w", err)
		}
	case FormatFLAC:
		if err := writeFLAC(path, tags, cover); nil != err {
			return fmt.Errorf("failed to write flac tags: %w", err)
		}
	case FormatMP4:
		if err := writeMP4(path, tags, cover); nil != err {
			return fmt.Errorf("failed to write mp4 tags: %w", err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return nil
}

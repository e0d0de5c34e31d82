package tag

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Sorrow446/go-mp4tag"

	"github.com/xeptore/yamdl/yandex/types"
)

func writeMP4(path string, tags types.TagSet, cover []byte) (err error) {
	file, err := mp4tag.Open(path)
	if nil != err {
		return fmt.Errorf("failed to open file: %v", err)
	}
	defer func() {
		if closeErr := file.Close(); nil != closeErr {
			err = errors.Join(err, fmt.Errorf("failed to close file: %v", closeErr))
		}
	}()

	comment := sourceComment
	if v := tags.Get(types.FieldVersion); v != "" {
		comment = fmt.Sprintf("Version: %s | %s", v, sourceComment)
	}

	mp4Tags := mp4tag.MP4Tags{ //nolint:exhaustruct
		Title:       tags.Get(types.FieldTitle),
		Artist:      tags.Get(types.FieldArtist),
		Album:       tags.Get(types.FieldAlbum),
		AlbumArtist: tags.Get(types.FieldAlbumArtist),
		CustomGenre: tags.Get(types.FieldGenre),
		Comment:     comment,
		TrackNumber: int16(atoi(tags.Get(types.FieldTrackNumber))),
		TrackTotal:  int16(atoi(tags.Get(types.FieldTotalTracks))),
		DiscNumber:  int16(atoi(tags.Get(types.FieldDiscNumber))),
		DiscTotal:   int16(atoi(tags.Get(types.FieldTotalDiscs))),
		Year:        int32(atoi(tags.Get(types.FieldYear))),
	}

	if len(cover) > 0 {
		mp4Tags.Pictures = []*mp4tag.MP4Picture{
			{Format: mp4tag.ImageTypeJPEG, Data: cover}, //nolint:exhaustruct
		}
	}

	if err := file.Write(&mp4Tags, []string{}); nil != err {
		return fmt.Errorf("failed to write tags: %v", err)
	}

	return nil
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if nil != err {
		return 0
	}

	return n
}

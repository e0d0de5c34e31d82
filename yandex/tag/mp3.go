package tag

import (
	"errors"
	"fmt"

	"github.com/bogem/id3v2"

	"github.com/xeptore/yamdl/yandex/metadata"
	"github.com/xeptore/yamdl/yandex/types"
)

func writeMP3(path string, tags types.TagSet, cover []byte) (err error) {
	file, err := id3v2.Open(path, id3v2.Options{Parse: true}) //nolint:exhaustruct
	if nil != err {
		return fmt.Errorf("failed to open file: %v", err)
	}
	defer func() {
		if closeErr := file.Close(); nil != closeErr {
			err = errors.Join(err, fmt.Errorf("failed to close file: %v", closeErr))
		}
	}()

	file.DeleteAllFrames()
	file.SetDefaultEncoding(id3v2.EncodingUTF8)

	addText := func(id string, v string) {
		if v != "" {
			file.AddTextFrame(id, id3v2.EncodingUTF8, v)
		}
	}
	addText("TIT2", tags.Get(types.FieldTitle))
	addText("TPE1", tags.Get(types.FieldArtist))
	addText("TALB", tags.Get(types.FieldAlbum))
	addText("TPE2", tags.Get(types.FieldAlbumArtist))
	addText("TDRC", tags.Get(types.FieldYear))
	addText("TCON", tags.Get(types.FieldGenre))
	addText("TRCK", metadata.PositionPair(tags, types.FieldTrackNumber, types.FieldTotalTracks))
	addText("TPOS", metadata.PositionPair(tags, types.FieldDiscNumber, types.FieldTotalDiscs))
	addText("TIT3", tags.Get(types.FieldVersion))
	addText("TENC", encoderName)

	file.AddCommentFrame(id3v2.CommentFrame{
		Encoding:    id3v2.EncodingUTF8,
		Language:    "eng",
		Description: "",
		Text:        sourceComment,
	})

	if len(cover) > 0 {
		file.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    "image/jpeg",
			PictureType: id3v2.PTFrontCover,
			Description: "Front cover",
			Picture:     cover,
		})
	}

	if err := file.Save(); nil != err {
		return fmt.Errorf("failed to save file: %v", err)
	}

	return nil
}

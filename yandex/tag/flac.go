package tag

import (
	"fmt"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"

	"github.com/xeptore/yamdl/yandex/types"
)

func writeFLAC(path string, tags types.TagSet, cover []byte) error {
	file, err := flac.ParseFile(path)
	if nil != err {
		return fmt.Errorf("failed to parse file: %v", err)
	}

	// Replace any existing comment and picture blocks.
	blocks := file.Meta[:0]
	for _, block := range file.Meta {
		if block.Type != flac.VorbisComment && block.Type != flac.Picture {
			blocks = append(blocks, block)
		}
	}
	file.Meta = blocks

	comment := flacvorbis.New()
	addField := func(name string, v string) error {
		if v == "" {
			return nil
		}
		if err := comment.Add(name, v); nil != err {
			return fmt.Errorf("failed to add %s comment field: %v", name, err)
		}

		return nil
	}

	fields := []struct {
		name  string
		field types.TagField
	}{
		{flacvorbis.FIELD_TITLE, types.FieldTitle},
		{flacvorbis.FIELD_ARTIST, types.FieldArtist},
		{flacvorbis.FIELD_ALBUM, types.FieldAlbum},
		{"ALBUMARTIST", types.FieldAlbumArtist},
		{flacvorbis.FIELD_DATE, types.FieldYear},
		{flacvorbis.FIELD_GENRE, types.FieldGenre},
		{flacvorbis.FIELD_TRACKNUMBER, types.FieldTrackNumber},
		{"TRACKTOTAL", types.FieldTotalTracks},
		{"DISCNUMBER", types.FieldDiscNumber},
		{"DISCTOTAL", types.FieldTotalDiscs},
		{"VERSION", types.FieldVersion},
	}
	for _, f := range fields {
		if err := addField(f.name, tags.Get(f.field)); nil != err {
			return err
		}
	}

	if err := addField("COMMENT", sourceComment); nil != err {
		return err
	}
	if err := addField("ENCODER", encoderName); nil != err {
		return err
	}

	commentBlock := comment.Marshal()
	file.Meta = append(file.Meta, &commentBlock)

	if len(cover) > 0 {
		picture, err := flacpicture.NewFromImageData(
			flacpicture.PictureTypeFrontCover,
			"Front cover",
			cover,
			"image/jpeg",
		)
		if nil != err {
			return fmt.Errorf("failed to build picture block: %v", err)
		}

		pictureBlock := picture.Marshal()
		file.Meta = append(file.Meta, &pictureBlock)
	}

	if err := file.Save(path); nil != err {
		return fmt.Errorf("failed to save file: %v", err)
	}

	return nil
}

package tag

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

type Format int

const (
	FormatMP3 Format = iota
	FormatFLAC
	FormatMP4
	FormatOgg
)

func (f Format) String() string {
	switch f {
	case FormatMP3:
		return "mp3"
	case FormatFLAC:
		return "flac"
	case FormatMP4:
		return "mp4"
	case FormatOgg:
		return "ogg"
	}

	return "unknown"
}

func (f Format) Ext() string {
	switch f {
	case FormatMP3:
		return ".mp3"
	case FormatFLAC:
		return ".flac"
	case FormatMP4:
		return ".m4a"
	case FormatOgg:
		return ".ogg"
	}

	return ".mp3"
}

// DetectFormat sniffs the audio container from the file's leading bytes.
// Unrecognized content is treated as MP3 since raw MPEG audio carries no
// reliable signature.
func DetectFormat(path string) (f Format, err error) {
	file, err := os.Open(path)
	if nil != err {
		return 0, fmt.Errorf("failed to open file for format detection: %v", err)
	}
	defer func() {
		if closeErr := file.Close(); nil != closeErr {
			err = errors.Join(err, fmt.Errorf("failed to close file after format detection: %v", closeErr))
		}
	}()

	header := make([]byte, 12)
	n, err := io.ReadFull(file, header)
	if nil != err && !errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, fmt.Errorf("failed to read file header for format detection: %v", err)
	}
	header = header[:n]

	return detect(header), nil
}

func detect(header []byte) Format {
	switch {
	case bytes.HasPrefix(header, []byte("ID3")):
		return FormatMP3
	case len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0:
		return FormatMP3
	case len(header) >= 8 && bytes.Equal(header[4:8], []byte("ftyp")):
		return FormatMP4
	case bytes.HasPrefix(header, []byte("fLaC")):
		return FormatFLAC
	case bytes.HasPrefix(header, []byte("OggS")):
		return FormatOgg
	default:
		return FormatMP3
	}
}

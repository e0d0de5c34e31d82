package types

const (
	CodecFLAC    = "flac"
	CodecFLACMP4 = "flac-mp4"
	CodecMP3     = "mp3"
	CodecAAC     = "aac"
)

// CodecCandidate is one downloadable variant of a track as advertised by the
// catalog download-info endpoint.
type CodecCandidate struct {
	Codec       string
	BitrateKbps int
	// InfoURL is the retrieval handle the candidate's direct URL is derived
	// from.
	InfoURL string
}

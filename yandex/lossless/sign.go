package lossless

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/xeptore/yamdl/must"
)

const (
	signSecret = "p93jhgh689SBReK6ghtw62"

	qualityLossless = "lossless"
	transportEncRaw = "encraw"
)

// codecsParam is the fixed codec preference list advertised to the file-info
// endpoint, in this exact order.
var codecsParam = strings.Join([]string{
	"flac",
	"flac-mp4",
	"mp3",
	"aac",
	"he-aac",
	"aac-mp4",
	"he-aac-mp4",
}, ",")

// sign computes the request signature of a file-info request. The base
// string is the concatenation of the parameter values in insertion order
// with every comma removed, and the result is the base64 HMAC-SHA256 digest
// with its final padding character dropped.
func sign(ts int64, trackID string) string {
	base := strconv.FormatInt(ts, 10) + trackID + qualityLossless + codecsParam + transportEncRaw
	base = strings.ReplaceAll(base, ",", "")

	mac := hmac.New(sha256.New, []byte(signSecret))
	mac.Write([]byte(base))
	digest := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	must.Be(len(digest) == 44, "base64 sha-256 digest must be 44 characters")

	return digest[:len(digest)-1]
}

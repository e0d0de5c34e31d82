// Package lossless implements the signed file-info transport that serves
// FLAC variants of catalog tracks, optionally AES-CTR encrypted.
package lossless

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/xeptore/yamdl/config"
	"github.com/xeptore/yamdl/httputil"
)

const fileInfoURL = "https://api.music.yandex.net/get-file-info"

var (
	// ErrUnavailable signals that no lossless variant can be served for the
	// track and the caller should fall back to the standard transport.
	ErrUnavailable = errors.New("lossless variant unavailable")
	// ErrDecryptFailed signals an unusable decryption key. Unlike
	// ErrUnavailable it is terminal for the track.
	ErrDecryptFailed = errors.New("failed to decrypt lossless stream")
)

type Fetcher struct {
	token   string
	timeout time.Duration
	now     func() time.Time
	logger  zerolog.Logger
}

func NewFetcher(logger zerolog.Logger, conf config.Yandex) *Fetcher {
	return &Fetcher{
		token:   conf.Token,
		timeout: time.Duration(conf.Timeouts.GetFileInfo) * time.Second,
		now:     time.Now,
		logger:  logger,
	}
}

type FileInfo struct {
	Codec string
	URLs  []string
	// Key is the hex-encoded AES-128 key of the stream. Empty when the
	// stream is served unencrypted.
	Key string
}

// Ext maps a lossless codec to its container file extension.
func Ext(codec string) string {
	switch codec {
	case "flac-mp4":
		return ".m4a"
	default:
		return ".flac"
	}
}

func (f *Fetcher) fileInfo(ctx context.Context, trackID string) (info *FileInfo, err error) {
	ts := f.now().Unix()

	params := url.Values{}
	params.Set("ts", fmt.Sprintf("%d", ts))
	params.Set("trackId", trackID)
	params.Set("quality", qualityLossless)
	params.Set("codecs", codecsParam)
	params.Set("transports", transportEncRaw)
	params.Set("sign", sign(ts, trackID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileInfoURL+"?"+params.Encode(), nil)
	if nil != err {
		return nil, fmt.Errorf("failed to create get file info request: %w", err)
	}

	req.Header.Set("Authorization", "OAuth "+f.token)

	client := http.Client{Timeout: f.timeout} //nolint:exhaustruct
	resp, err := client.Do(req)
	if nil != err {
		return nil, fmt.Errorf("failed to send get file info request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); nil != closeErr {
			err = errors.Join(err, fmt.Errorf("failed to close get file info response body: %v", closeErr))
		}
	}()

	respBody, err := httputil.ReadResponseBody(resp)
	if nil != err {
		return nil, fmt.Errorf("failed to read get file info response body: %v", err)
	}

	if name := gjson.GetBytes(respBody, "error.name"); name.Exists() {
		switch name.Str {
		case "no-rights":
			f.logger.Debug().Str("track_id", trackID).Msg("Account has no rights to lossless variant of track")
		default:
			f.logger.Warn().
				Str("track_id", trackID).
				Str("reason", name.Str).
				Msg("File info request was rejected")
		}

		return nil, ErrUnavailable
	}

	di := gjson.GetBytes(respBody, "download_info")
	if !di.Exists() {
		return nil, ErrUnavailable
	}

	codec := di.Get("codec").Str
	if codec != "flac" && codec != "flac-mp4" {
		f.logger.Debug().
			Str("track_id", trackID).
			Str("codec", codec).
			Msg("File info offered a non-lossless codec")

		return nil, ErrUnavailable
	}

	var urls []string
	for _, u := range di.Get("urls").Array() {
		if u.Str != "" {
			urls = append(urls, u.Str)
		}
	}
	if len(urls) == 0 {
		return nil, ErrUnavailable
	}

	return &FileInfo{
		Codec: codec,
		URLs:  urls,
		Key:   di.Get("key").Str,
	}, nil
}

// Fetch downloads the lossless variant of the track into dst, decrypting it
// on the fly when the variant is served encrypted, and reports the codec the
// variant was served in.
func (f *Fetcher) Fetch(ctx context.Context, trackID, dst string) (codec string, err error) {
	info, err := f.fileInfo(ctx, trackID)
	if nil != err {
		return "", err
	}

	streamURL := info.URLs[rand.IntN(len(info.URLs))]

	var stream cipher.Stream
	if info.Key != "" {
		key, err := hex.DecodeString(info.Key)
		if nil != err {
			return "", fmt.Errorf("%w: malformed key: %v", ErrDecryptFailed, err)
		}

		block, err := aes.NewCipher(key)
		if nil != err {
			return "", fmt.Errorf("%w: %v", ErrDecryptFailed, err)
		}

		// The stream counter starts at zero with no per-stream nonce.
		var iv [aes.BlockSize]byte
		stream = cipher.NewCTR(block, iv[:])
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL, nil)
	if nil != err {
		return "", fmt.Errorf("failed to create download stream request: %w", err)
	}

	client := http.Client{} //nolint:exhaustruct
	resp, err := client.Do(req)
	if nil != err {
		return "", fmt.Errorf("failed to send download stream request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); nil != closeErr {
			err = errors.Join(err, fmt.Errorf("failed to close download stream response body: %v", closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		f.logger.Warn().
			Str("track_id", trackID).
			Int("status_code", resp.StatusCode).
			Msg("Unexpected stream response status code")

		return "", ErrUnavailable
	}

	var src io.Reader = resp.Body
	if nil != stream {
		src = cipher.StreamReader{S: stream, R: resp.Body}
	}

	if err := writeStream(dst, src); nil != err {
		return "", err
	}

	return info.Codec, nil
}

func writeStream(dst string, src io.Reader) (err error) {
	file, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if nil != err {
		return fmt.Errorf("failed to create stream file: %v", err)
	}
	defer func() {
		if closeErr := file.Close(); nil != closeErr {
			err = errors.Join(err, fmt.Errorf("failed to close stream file: %v", closeErr))
		}
	}()

	if _, err := io.Copy(file, src); nil != err {
		if removeErr := os.Remove(dst); nil != removeErr && !errors.Is(removeErr, os.ErrNotExist) {
			err = errors.Join(err, fmt.Errorf("failed to remove partial stream file: %v", removeErr))
		}

		return fmt.Errorf("failed to write stream file: %w", err)
	}

	return nil
}

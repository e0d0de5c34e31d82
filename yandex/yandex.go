// Package yandex recognizes Yandex Music content locators and maps them to
// their catalog entity kinds.
package yandex

import (
	"errors"
	"regexp"

	"github.com/xeptore/yamdl/yandex/types"
)

var ErrInvalidLocator = errors.New("unsupported content locator")

var (
	trackIDRegex       = regexp.MustCompile(`track/(\d+)`)
	albumIDRegex       = regexp.MustCompile(`album/(\d+)`)
	artistIDRegex      = regexp.MustCompile(`artist/(\d+)`)
	playlistOwnerRegex = regexp.MustCompile(`(?:playlist/([^/]+)|users/([^/]+)/playlists)/(\d+)`)
	playlistUIDRegex   = regexp.MustCompile(`playlists/(?:lk\.)?([0-9a-fA-F-]+)`)
)

// ParseLink classifies a content locator. Track segments win over album
// segments since album track pages carry both.
func ParseLink(link string) (types.Link, error) {
	if m := trackIDRegex.FindStringSubmatch(link); nil != m {
		return types.Link{Kind: types.LinkKindTrack, ID: m[1]}, nil //nolint:exhaustruct
	}

	if m := albumIDRegex.FindStringSubmatch(link); nil != m {
		return types.Link{Kind: types.LinkKindAlbum, ID: m[1]}, nil //nolint:exhaustruct
	}

	if m := playlistOwnerRegex.FindStringSubmatch(link); nil != m {
		owner := m[1]
		if owner == "" {
			owner = m[2]
		}

		return types.Link{Kind: types.LinkKindPlaylist, Owner: owner, ID: m[3]}, nil //nolint:exhaustruct
	}

	if m := playlistUIDRegex.FindStringSubmatch(link); nil != m {
		return types.Link{Kind: types.LinkKindPlaylist, UID: m[1]}, nil //nolint:exhaustruct
	}

	if m := artistIDRegex.FindStringSubmatch(link); nil != m {
		return types.Link{Kind: types.LinkKindArtist, ID: m[1]}, nil //nolint:exhaustruct
	}

	return types.Link{}, ErrInvalidLocator //nolint:exhaustruct
}

package yandex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/yamdl/yandex"
	"github.com/xeptore/yamdl/yandex/types"
)

func TestParseLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		link string
		want types.Link
	}{
		{
			name: "track",
			link: "https://music.yandex.ru/track/987654",
			want: types.Link{Kind: types.LinkKindTrack, ID: "987654"},
		},
		{
			name: "album track wins over album",
			link: "https://music.yandex.ru/album/123/track/456",
			want: types.Link{Kind: types.LinkKindTrack, ID: "456"},
		},
		{
			name: "album",
			link: "https://music.yandex.ru/album/123456",
			want: types.Link{Kind: types.LinkKindAlbum, ID: "123456"},
		},
		{
			name: "artist",
			link: "https://music.yandex.ru/artist/42",
			want: types.Link{Kind: types.LinkKindArtist, ID: "42"},
		},
		{
			name: "owner scoped playlist",
			link: "https://music.yandex.ru/users/somebody/playlists/1000",
			want: types.Link{Kind: types.LinkKindPlaylist, Owner: "somebody", ID: "1000"},
		},
		{
			name: "owner scoped playlist short form",
			link: "https://music.yandex.ru/playlist/somebody/1000",
			want: types.Link{Kind: types.LinkKindPlaylist, Owner: "somebody", ID: "1000"},
		},
		{
			name: "unscoped playlist",
			link: "https://music.yandex.ru/playlists/a1b2c3d4-e5f6-7890-abcd-ef1234567890",
			want: types.Link{Kind: types.LinkKindPlaylist, UID: "a1b2c3d4-e5f6-7890-abcd-ef1234567890"},
		},
		{
			name: "unscoped playlist with personal scope prefix",
			link: "https://music.yandex.ru/playlists/lk.a1b2c3d4-e5f6-7890-abcd-ef1234567890",
			want: types.Link{Kind: types.LinkKindPlaylist, UID: "a1b2c3d4-e5f6-7890-abcd-ef1234567890"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := yandex.ParseLink(tt.link)
			require.NoError(t, err)
			assert.Exactly(t, tt.want, got)
		})
	}
}

func TestParseLinkInvalid(t *testing.T) {
	t.Parallel()

	for _, link := range []string{
		"",
		"https://music.yandex.ru/",
		"https://example.com/watch?v=123",
		"https://music.yandex.ru/album/abc",
	} {
		_, err := yandex.ParseLink(link)
		assert.ErrorIs(t, err, yandex.ErrInvalidLocator, "link: %s", link)
	}
}

package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/yamdl/fsutil"
)

func TestSanitizeFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "AC/DC - Back In Black", want: "AC_DC - Back In Black"},
		{in: `What? <No> "Way"`, want: "What_ _No_ _Way_"},
		{in: "  padded  ", want: "padded"},
		{in: "plain name", want: "plain name"},
		{in: `a:b\c|d*e`, want: "a_b_c_d_e"},
	}

	for _, tt := range tests {
		assert.Exactly(t, tt.want, fsutil.SanitizeFileName(tt.in))
	}
}

func TestMove(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	dst := filepath.Join(dir, "nested", "dst")
	require.NoError(t, fsutil.Move(src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Exactly(t, []byte("payload"), got)

	_, err = os.Stat(src)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

package lossless

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamDecryptionRoundtrip(t *testing.T) {
	t.Parallel()

	key := []byte("0123456789abcdef")
	plaintext := []byte("a perfectly ordinary flac stream body")

	block, err := aes.NewCipher(key)
	require.NoError(t, err)

	var iv [aes.BlockSize]byte
	encrypted := make([]byte, len(plaintext))
	cipher.NewCTR(block, iv[:]).XORKeyStream(encrypted, plaintext)

	// Decryption uses the same zero-IV CTR construction.
	decBlock, err := aes.NewCipher(key)
	require.NoError(t, err)

	reader := cipher.StreamReader{
		S: cipher.NewCTR(decBlock, iv[:]),
		R: bytes.NewReader(encrypted),
	}
	got, err := io.ReadAll(reader)
	require.NoError(t, err)

	assert.Exactly(t, plaintext, got)
}

func TestExt(t *testing.T) {
	t.Parallel()

	assert.Exactly(t, ".flac", Ext("flac"))
	assert.Exactly(t, ".m4a", Ext("flac-mp4"))
}

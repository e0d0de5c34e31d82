package lossless

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignIsStable(t *testing.T) {
	t.Parallel()

	first := sign(1700000000, "12345")
	for range 5 {
		assert.Exactly(t, first, sign(1700000000, "12345"))
	}
}

func TestSignShape(t *testing.T) {
	t.Parallel()

	got := sign(1700000000, "12345")

	// A base64 SHA-256 digest is 44 characters with one trailing padding
	// character, which the signature drops.
	assert.Len(t, got, 43)
	assert.NotContains(t, got, "=")
}

func TestSignVariesWithInputs(t *testing.T) {
	t.Parallel()

	assert.NotEqual(t, sign(1700000000, "12345"), sign(1700000001, "12345"))
	assert.NotEqual(t, sign(1700000000, "12345"), sign(1700000000, "12346"))
}

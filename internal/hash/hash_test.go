package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher()

	hashed, err := h.Hash("pw123")
	assert.NoError(t, err)
	assert.NotEqual(t, "pw123", hashed)
	assert.True(t, strings.HasPrefix(hashed, "$2"))

	ok, err := h.Check("pw123", hashed)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Check("wrong", hashed)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_GarbageHash(t *testing.T) {
	h := NewBcryptHasher()

	_, err := h.Check("pw123", "not-a-bcrypt-hash")
	assert.Error(t, err)
}

func TestArgon2IDHasher_RoundTrip(t *testing.T) {
	h := NewArgon2IDHasher()

	hashed, err := h.Hash("pw123")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(hashed, "$argon2id$"))

	ok, err := h.Check("pw123", hashed)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Check("wrong", hashed)
	assert.NoError(t, err)
	assert.False(t, ok)
}

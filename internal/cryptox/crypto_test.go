package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen_RoundTrip(t *testing.T) {
	key := DeriveKey("test-secret")

	blob, err := Seal([]byte("hunter2"), key)
	require.NoError(t, err)
	require.NotEmpty(t, blob)

	plain, err := Open(blob, key)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", string(plain))
}

func TestSeal_NonceIsFresh(t *testing.T) {
	key := DeriveKey("test-secret")

	a, err := Seal([]byte("same"), key)
	require.NoError(t, err)
	b, err := Seal([]byte("same"), key)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestOpen_WrongKey(t *testing.T) {
	blob, err := Seal([]byte("secret"), DeriveKey("right"))
	require.NoError(t, err)

	_, err = Open(blob, DeriveKey("wrong"))
	assert.Error(t, err)
}

func TestOpen_TamperedBlob(t *testing.T) {
	key := DeriveKey("k")
	blob, err := Seal([]byte("secret"), key)
	require.NoError(t, err)

	blob[len(blob)-1] ^= 0xff
	_, err = Open(blob, key)
	assert.Error(t, err)
}

func TestOpen_TruncatedBlob(t *testing.T) {
	_, err := Open([]byte{1, 2, 3}, DeriveKey("k"))
	assert.ErrorIs(t, err, ErrMalformedBlob)
}

func TestStringHelpers_EmptyPassword(t *testing.T) {
	key := DeriveKey("k")

	blob, err := SealString("", key)
	require.NoError(t, err)
	assert.Nil(t, blob)

	s, err := OpenString(nil, key)
	require.NoError(t, err)
	assert.Empty(t, s)
}

package models

import (
	"testing"

	"github.com/medrelay-dev/medrelay/internal/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := crypto.Init("0123456789abcdef"); err != nil {
		panic(err)
	}
	m.Run()
}

func TestEncryptedStringRoundTrip(t *testing.T) {
	original := EncryptedString("Hello")

	stored, err := original.Value()
	require.NoError(t, err)
	assert.NotEqual(t, "Hello", stored)

	var loaded EncryptedString
	require.NoError(t, loaded.Scan(stored))
	assert.Equal(t, original, loaded)
}

func TestEncryptedInt64RoundTrip(t *testing.T) {
	original := EncryptedInt64(101)

	stored, err := original.Value()
	require.NoError(t, err)

	var loaded EncryptedInt64
	require.NoError(t, loaded.Scan(stored))
	assert.Equal(t, original, loaded)
}

func TestScanHandlesNull(t *testing.T) {
	var s EncryptedString
	require.NoError(t, s.Scan(nil))
	assert.Equal(t, EncryptedString(""), s)

	var v EncryptedInt64
	require.NoError(t, v.Scan(nil))
	assert.Equal(t, EncryptedInt64(0), v)
}

func TestScanHandlesByteSlices(t *testing.T) {
	stored, err := EncryptedString("PATIENT").Value()
	require.NoError(t, err)

	var loaded EncryptedString
	require.NoError(t, loaded.Scan([]byte(stored.(string))))
	assert.Equal(t, EncryptedString("PATIENT"), loaded)
}

func TestScanRejectsForeignCiphertext(t *testing.T) {
	var s EncryptedString
	err := s.Scan("definitely not ciphertext")
	require.Error(t, err)
	assert.ErrorIs(t, err, crypto.ErrCipher)
}

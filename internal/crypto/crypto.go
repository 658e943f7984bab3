package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
)

// ErrCipher marks a decryption failure: malformed ciphertext or a value
// written under a different key. Callers must treat it as data corruption,
// not as an empty value.
var ErrCipher = errors.New("cipher error")

var block cipher.Block

// mustBlock enforces the startup contract: Init runs before the first
// database access, so an unset cipher is a programming error, not a
// recoverable condition.
func mustBlock() cipher.Block {
	if block == nil {
		panic("crypto: Init must be called before encrypting or decrypting")
	}
	return block
}

// Init derives the process-wide block cipher from the storage secret.
// The key must be exactly 16 bytes (AES-128); anything else is a fatal
// configuration error and the process should not start.
func Init(key string) error {
	if len(key) != 16 {
		return fmt.Errorf("storage encryption key must be exactly 16 characters")
	}

	b, err := aes.NewCipher([]byte(key))
	if err != nil {
		return err
	}

	block = b
	return nil
}

// EncryptString encrypts plaintext deterministically and returns a base64
// stored form. Identical plaintexts produce identical ciphertexts; the
// encrypted-equality lookups in the store depend on that.
func EncryptString(plaintext string) string {
	b := mustBlock()

	padded := pkcs7Pad([]byte(plaintext), b.BlockSize())
	out := make([]byte, len(padded))

	for i := 0; i < len(padded); i += b.BlockSize() {
		b.Encrypt(out[i:i+b.BlockSize()], padded[i:i+b.BlockSize()])
	}

	return base64.StdEncoding.EncodeToString(out)
}

// DecryptString reverses EncryptString. Any structural problem with the
// input (bad base64, wrong length, bad padding) comes back as ErrCipher.
func DecryptString(encrypted string) (string, error) {
	b := mustBlock()

	raw, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCipher, err)
	}

	if len(raw) == 0 || len(raw)%b.BlockSize() != 0 {
		return "", fmt.Errorf("%w: ciphertext is not block aligned", ErrCipher)
	}

	out := make([]byte, len(raw))
	for i := 0; i < len(raw); i += b.BlockSize() {
		b.Decrypt(out[i:i+b.BlockSize()], raw[i:i+b.BlockSize()])
	}

	unpadded, err := pkcs7Unpad(out, b.BlockSize())
	if err != nil {
		return "", err
	}

	return string(unpadded), nil
}

// EncryptInt64 encrypts the canonical decimal representation of v.
func EncryptInt64(v int64) string {
	return EncryptString(strconv.FormatInt(v, 10))
}

// DecryptInt64 decrypts a value written by EncryptInt64.
func DecryptInt64(encrypted string) (int64, error) {
	plain, err := DecryptString(encrypted)
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseInt(plain, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: decrypted value is not an integer: %v", ErrCipher, err)
	}

	return v, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("%w: invalid padding", ErrCipher)
	}

	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: invalid padding", ErrCipher)
		}
	}

	return data[:len(data)-n], nil
}

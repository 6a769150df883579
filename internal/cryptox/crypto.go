// Package cryptox seals record secrets at rest. Passwords are stored as a
// single AES-GCM blob (nonce prepended to the ciphertext) under a key derived
// from the server secret, so a database dump alone does not expose them.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
)

var ErrMalformedBlob = errors.New("sealed blob too short")

// DeriveKey turns the configured secret into a 32-byte AES-256 key.
func DeriveKey(secret string) []byte {
	hash := sha256.Sum256([]byte(secret))
	return hash[:]
}

// Seal encrypts plaintext with AES-GCM and returns nonce||ciphertext.
// A fresh random nonce is generated per call.
func Seal(plaintext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating gcm: %w", err)
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a blob produced by Seal. Tampered or truncated blobs fail.
func Open(blob, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating gcm: %w", err)
	}

	if len(blob) < aesgcm.NonceSize() {
		return nil, ErrMalformedBlob
	}

	nonce, ciphertext := blob[:aesgcm.NonceSize()], blob[aesgcm.NonceSize():]
	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("opening blob: %w", err)
	}
	return plaintext, nil
}

// SealString and OpenString are convenience wrappers for record passwords.
// An empty string seals to nil so optional passwords stay NULL in storage.
func SealString(s string, key []byte) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	return Seal([]byte(s), key)
}

func OpenString(blob []byte, key []byte) (string, error) {
	if len(blob) == 0 {
		return "", nil
	}
	b, err := Open(blob, key)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

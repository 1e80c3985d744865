package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const sealerInfo = "cairogo-session-tokens"

// ErrUnsealFailed - stored token could not be decrypted
var ErrUnsealFailed = errors.New("unseal token failed")

// Sealer encrypts tokens before they reach durable storage (AES-256-GCM,
// key derived with HKDF-SHA256). A nil Sealer stores tokens as is.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer - masterKey is base64 and at least 16 bytes; empty disables sealing.
func NewSealer(masterKey string) (*Sealer, error) {
	if masterKey == "" {
		return nil, nil
	}

	secret, err := base64.StdEncoding.DecodeString(masterKey)
	if err != nil {
		return nil, fmt.Errorf("decode session key: %w", err)
	}
	if len(secret) < 16 {
		return nil, errors.New("session key must be at least 16 bytes")
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(sealerInfo)), key); err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

// Seal returns base64(nonce|ciphertext).
func (s *Sealer) Seal(plain string) (string, error) {
	if s == nil || plain == "" {
		return plain, nil
	}
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	return base64.StdEncoding.EncodeToString(s.aead.Seal(nonce, nonce, []byte(plain), nil)), nil
}

func (s *Sealer) Unseal(sealed string) (string, error) {
	if s == nil || sealed == "" {
		return sealed, nil
	}
	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsealFailed, err)
	}
	n := s.aead.NonceSize()
	if len(data) < n+s.aead.Overhead() {
		return "", fmt.Errorf("%w: ciphertext too short", ErrUnsealFailed)
	}
	plain, err := s.aead.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsealFailed, err)
	}
	return string(plain), nil
}

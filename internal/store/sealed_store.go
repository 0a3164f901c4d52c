package store

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

var sealedInfo = []byte("game-catalog credential store v1")

// SealedStore encrypts values with XChaCha20-Poly1305 before handing them to an inner store.
// The entry key is bound as associated data, so a value copied under another key fails to open.
type SealedStore struct {
	inner KV
	aead  cipher.AEAD
}

// NewSealedStore derives an AEAD key from secret via HKDF-SHA256 and wraps inner.
func NewSealedStore(inner KV, secret []byte) (*SealedStore, error) {
	if inner == nil {
		return nil, errors.New("sealed store requires an inner store")
	}
	if len(secret) == 0 {
		return nil, errors.New("sealed store requires a secret")
	}
	hk := hkdf.New(sha256.New, secret, nil, sealedInfo)
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hk, key); err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	return &SealedStore{inner: inner, aead: aead}, nil
}

// Get opens the value stored under key.
func (s *SealedStore) Get(ctx context.Context, key string) (string, error) {
	raw, err := s.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}
	sealed, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", key, err)
	}
	ns := s.aead.NonceSize()
	if len(sealed) < ns+s.aead.Overhead() {
		return "", fmt.Errorf("sealed value for %s too short", key)
	}
	plain, err := s.aead.Open(nil, sealed[:ns], sealed[ns:], []byte(key))
	if err != nil {
		return "", fmt.Errorf("open %s: %w", key, err)
	}
	return string(plain), nil
}

// Set seals value with a random nonce and stores it base64-encoded.
func (s *SealedStore) Set(ctx context.Context, key, value string) error {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return err
	}
	sealed := s.aead.Seal(nonce, nonce, []byte(value), []byte(key))
	return s.inner.Set(ctx, key, base64.StdEncoding.EncodeToString(sealed))
}

// Delete removes key from the inner store.
func (s *SealedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

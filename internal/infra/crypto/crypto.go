// Package crypto provides at-rest encryption for stored values.
package crypto

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/runoshun/tasklist/internal/domain"
)

const (
	// NonceSize is the size of the nonce for AES-GCM (12 bytes).
	NonceSize = 12
	// KeySize is the size of the AES-256 key (32 bytes).
	KeySize = 32
)

var (
	// ErrInvalidKey is returned when the encryption key is invalid.
	ErrInvalidKey = errors.New("invalid encryption key: must be 32 bytes (64 hex characters)")
	// ErrDecryptionFailed is returned when decryption fails.
	ErrDecryptionFailed = errors.New("decryption failed: invalid ciphertext or key")
	// ErrCiphertextTooShort is returned when the ciphertext is too short.
	ErrCiphertextTooShort = errors.New("ciphertext too short")
)

// Encryptor handles AES-256-GCM encryption.
// Re-encrypting the most recent plaintext returns the same ciphertext, so
// unchanged values keep a stable hash in content-addressed backends.
type Encryptor struct {
	gcm      cipher.AEAD
	lastHash [sha256.Size]byte
	lastOut  []byte
	mu       sync.Mutex
}

// NewEncryptor creates a new Encryptor with the given hex-encoded key.
// The key must be 64 hex characters (32 bytes).
func NewEncryptor(hexKey string) (*Encryptor, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil || len(key) != KeySize {
		return nil, ErrInvalidKey
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	return &Encryptor{gcm: gcm}, nil
}

// Encrypt encrypts plaintext using AES-256-GCM.
// Returns: nonce (12 bytes) + ciphertext + auth tag
func (e *Encryptor) Encrypt(plaintext []byte) ([]byte, error) {
	hash := sha256.Sum256(plaintext)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.lastOut != nil && hash == e.lastHash {
		return bytes.Clone(e.lastOut), nil
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	ciphertext := e.gcm.Seal(nonce, nonce, plaintext, nil)

	e.lastHash = hash
	e.lastOut = ciphertext
	return bytes.Clone(ciphertext), nil
}

// Decrypt decrypts ciphertext using AES-256-GCM.
// Expects: nonce (12 bytes) + ciphertext + auth tag
func (e *Encryptor) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < NonceSize {
		return nil, ErrCiphertextTooShort
	}

	nonce := ciphertext[:NonceSize]
	encrypted := ciphertext[NonceSize:]

	plaintext, err := e.gcm.Open(nil, nonce, encrypted, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}

// SealedStore encrypts values before handing them to the wrapped store.
// Sealed values are stored as a JSON string (base64 of nonce+ciphertext) so
// backends that require JSON values accept them.
type SealedStore struct {
	inner domain.KeyValueStore
	enc   *Encryptor
}

// NewSealedStore wraps inner with enc.
func NewSealedStore(inner domain.KeyValueStore, enc *Encryptor) *SealedStore {
	return &SealedStore{inner: inner, enc: enc}
}

// Get reads and decrypts the value under key.
func (s *SealedStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var sealed []byte
	if err := json.Unmarshal(data, &sealed); err != nil {
		return nil, fmt.Errorf("%w: value under %q is not sealed", ErrDecryptionFailed, key)
	}
	return s.enc.Decrypt(sealed)
}

// Set encrypts value and writes it under key.
func (s *SealedStore) Set(ctx context.Context, key string, value []byte) error {
	sealed, err := s.enc.Encrypt(value)
	if err != nil {
		return err
	}
	data, err := json.Marshal(sealed)
	if err != nil {
		return fmt.Errorf("encode sealed value: %w", err)
	}
	return s.inner.Set(ctx, key, data)
}

// Remove deletes key from the wrapped store.
func (s *SealedStore) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, key)
}

// Close closes the wrapped store.
func (s *SealedStore) Close() error {
	return s.inner.Close()
}

var _ domain.KeyValueStore = (*SealedStore)(nil)

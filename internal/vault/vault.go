// Package vault encrypts target-panel login secrets at rest and decrypts them
// on demand for a single distribution attempt. Ciphertext is ChaCha20-Poly1305
// with a fresh random nonce per record, so encrypting the same plaintext twice
// never yields the same output, and any tampering fails authentication instead
// of decrypting to garbage. Plaintext secrets are never logged.
package vault

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the required vault key length in bytes.
const KeySize = chacha20poly1305.KeySize

// ErrCiphertextInvalid is returned when a ciphertext is malformed, truncated,
// or fails authentication. Callers treat it as fatal for that one credential
// lookup.
var ErrCiphertextInvalid = errors.New("vault: ciphertext invalid or tampered")

// credentialSep joins identifier and secret inside one ciphertext. NUL cannot
// appear in either field on any supported panel.
const credentialSep = "\x00"

// Credentials is a transient decrypted login pair. It exists only inside the
// call stack around one adapter login and must not be persisted or logged.
type Credentials struct {
	Identifier string
	Secret     string
}

// Vault performs symmetric encryption of login secrets.
type Vault struct {
	key []byte
}

// New creates a Vault from a raw 32-byte key.
func New(key []byte) (*Vault, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("vault key must be %d bytes, got %d", KeySize, len(key))
	}
	k := make([]byte, KeySize)
	copy(k, key)
	return &Vault{key: k}, nil
}

// NewFromHex creates a Vault from a hex-encoded key, the format VAULT_KEY uses.
func NewFromHex(hexKey string) (*Vault, error) {
	key, err := hex.DecodeString(strings.TrimSpace(hexKey))
	if err != nil {
		return nil, fmt.Errorf("vault key is not valid hex: %w", err)
	}
	return New(key)
}

// Encrypt encrypts plaintext with a fresh random nonce and returns
// base64(nonce || ciphertext) for at-rest storage.
func (v *Vault) Encrypt(plaintext string) (string, error) {
	aead, err := chacha20poly1305.New(v.key)
	if err != nil {
		return "", fmt.Errorf("failed to initialize cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Any malformed or tampered input returns
// ErrCiphertextInvalid rather than incorrect plaintext.
func (v *Vault) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(ciphertext))
	if err != nil {
		return "", ErrCiphertextInvalid
	}

	aead, err := chacha20poly1305.New(v.key)
	if err != nil {
		return "", fmt.Errorf("failed to initialize cipher: %w", err)
	}

	if len(raw) < aead.NonceSize() {
		return "", ErrCiphertextInvalid
	}

	nonce, sealed := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrCiphertextInvalid
	}
	return string(plaintext), nil
}

// EncryptCredentials encodes an identifier/secret pair into one ciphertext.
func (v *Vault) EncryptCredentials(creds Credentials) (string, error) {
	if strings.Contains(creds.Identifier, credentialSep) || strings.Contains(creds.Secret, credentialSep) {
		return "", fmt.Errorf("credentials must not contain NUL bytes")
	}
	return v.Encrypt(creds.Identifier + credentialSep + creds.Secret)
}

// DecryptCredentials decrypts a ciphertext produced by EncryptCredentials.
func (v *Vault) DecryptCredentials(ciphertext string) (Credentials, error) {
	plaintext, err := v.Decrypt(ciphertext)
	if err != nil {
		return Credentials{}, err
	}
	id, secret, ok := strings.Cut(plaintext, credentialSep)
	if !ok {
		return Credentials{}, ErrCiphertextInvalid
	}
	return Credentials{Identifier: id, Secret: secret}, nil
}

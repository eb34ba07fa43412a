package services

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/damacus/iron-navigator/internal/models"
)

// SessionKeySize is the AES-256 key length the session seal needs
const SessionKeySize = 32

// AuthService seals identities into opaque session cookies
type AuthService struct {
	encryptionKey []byte
}

// NewAuthService creates an auth service from a 32 byte key.
// An empty key generates an ephemeral one, so sessions end when the process restarts.
func NewAuthService(key string) (*AuthService, error) {
	if key == "" {
		newKey := make([]byte, SessionKeySize)
		if _, err := io.ReadFull(rand.Reader, newKey); err != nil {
			return nil, fmt.Errorf("failed to generate session key: %w", err)
		}
		return &AuthService{encryptionKey: newKey}, nil
	}
	if len(key) != SessionKeySize {
		return nil, fmt.Errorf("session key must be %d bytes, got %d", SessionKeySize, len(key))
	}
	return &AuthService{encryptionKey: []byte(key)}, nil
}

// EncryptIdentity serializes and encrypts an identity into a string (for the cookie)
func (s *AuthService) EncryptIdentity(identity models.Identity) (string, error) {
	data, err := json.Marshal(identity)
	if err != nil {
		return "", err
	}

	gcm, err := s.gcm()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, data, nil)
	return base64.URLEncoding.EncodeToString(ciphertext), nil
}

// DecryptIdentity decodes the cookie value back into an Identity
func (s *AuthService) DecryptIdentity(encrypted string) (*models.Identity, error) {
	ciphertext, err := base64.URLEncoding.DecodeString(encrypted)
	if err != nil {
		return nil, err
	}

	gcm, err := s.gcm()
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("malformed ciphertext")
	}

	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, err
	}

	var identity models.Identity
	if err := json.Unmarshal(plaintext, &identity); err != nil {
		return nil, err
	}

	return &identity, nil
}

func (s *AuthService) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

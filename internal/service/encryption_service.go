package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"seller-payout-vault/internal/core/ports"
)

const ivSize = 16 // hex-encoded as 32 chars in the stored value

// encryptionService implements AES-256-GCM encryption for payout
// secrets. Stored values have the form "<iv hex>:<ciphertext hex>"
// where the ciphertext includes the GCM auth tag.
type encryptionService struct {
	key []byte
}

// NewEncryptionService creates an encryption service from a hex-encoded
// 32-byte key.
func NewEncryptionService(hexKey string) (ports.EncryptionService, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decoding encryption key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(key))
	}
	return &encryptionService{key: key}, nil
}

func (s *encryptionService) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("plaintext cannot be empty")
	}

	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, ivSize)
	if err != nil {
		return "", fmt.Errorf("creating GCM: %w", err)
	}

	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("generating IV: %w", err)
	}

	ciphertext := gcm.Seal(nil, iv, []byte(plaintext), nil)
	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. Values that do not match the stored format
// are returned unchanged with no error; they predate encryption at
// rest. A well-formed value that fails authentication is an error.
func (s *encryptionService) Decrypt(stored string) (string, error) {
	iv, ciphertext, ok := parseStored(stored)
	if !ok {
		return stored, nil
	}

	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, ivSize)
	if err != nil {
		return "", fmt.Errorf("creating GCM: %w", err)
	}

	plaintext, err := gcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decrypting value: %w", err)
	}
	return string(plaintext), nil
}

func parseStored(stored string) (iv, ciphertext []byte, ok bool) {
	parts := strings.Split(stored, ":")
	if len(parts) != 2 || len(parts[0]) != ivSize*2 {
		return nil, nil, false
	}
	iv, err := hex.DecodeString(parts[0])
	if err != nil {
		return nil, nil, false
	}
	ciphertext, err = hex.DecodeString(parts[1])
	if err != nil {
		return nil, nil, false
	}
	return iv, ciphertext, true
}

// MaskAccountNumber hides all but the last four characters.
func (s *encryptionService) MaskAccountNumber(plain string) string {
	return mask(plain)
}

// MaskRoutingNumber hides all but the last four characters.
func (s *encryptionService) MaskRoutingNumber(plain string) string {
	return mask(plain)
}

func mask(plain string) string {
	if len(plain) < 4 {
		return "****"
	}
	return "****" + plain[len(plain)-4:]
}

package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func newTestEncryptor(t *testing.T) *encryptionService {
	t.Helper()
	svc, err := NewEncryptionService(testKeyHex)
	require.NoError(t, err)
	return svc.(*encryptionService)
}

func TestNewEncryptionService_KeyValidation(t *testing.T) {
	_, err := NewEncryptionService("not-hex")
	assert.Error(t, err)

	_, err = NewEncryptionService("abcd") // 2 bytes
	assert.Error(t, err)

	_, err = NewEncryptionService(testKeyHex)
	assert.NoError(t, err)
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	svc := newTestEncryptor(t)

	stored, err := svc.Encrypt("1234567890")
	require.NoError(t, err)

	parts := strings.Split(stored, ":")
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], 32) // 16-byte IV, hex encoded

	plain, err := svc.Decrypt(stored)
	require.NoError(t, err)
	assert.Equal(t, "1234567890", plain)
}

func TestEncrypt_EmptyPlaintext(t *testing.T) {
	svc := newTestEncryptor(t)

	_, err := svc.Encrypt("")
	assert.Error(t, err)
}

func TestEncrypt_UniqueIVs(t *testing.T) {
	svc := newTestEncryptor(t)

	a, err := svc.Encrypt("same-secret")
	require.NoError(t, err)
	b, err := svc.Encrypt("same-secret")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDecrypt_LegacyPlaintextPassthrough(t *testing.T) {
	svc := newTestEncryptor(t)

	// Values stored before encryption at rest come back unchanged.
	for _, stored := range []string{"1234567890", "no-colon-here", "short:value", ""} {
		plain, err := svc.Decrypt(stored)
		require.NoError(t, err)
		assert.Equal(t, stored, plain)
	}
}

func TestDecrypt_TamperedCiphertext(t *testing.T) {
	svc := newTestEncryptor(t)

	stored, err := svc.Encrypt("1234567890")
	require.NoError(t, err)

	parts := strings.Split(stored, ":")
	flipped := parts[0] + ":" + flipHexDigit(parts[1])

	_, err = svc.Decrypt(flipped)
	assert.Error(t, err)
}

func TestDecrypt_WrongKey(t *testing.T) {
	svc := newTestEncryptor(t)
	other, err := NewEncryptionService("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	require.NoError(t, err)

	stored, err := svc.Encrypt("1234567890")
	require.NoError(t, err)

	_, err = other.Decrypt(stored)
	assert.Error(t, err)
}

func TestMask(t *testing.T) {
	svc := newTestEncryptor(t)

	assert.Equal(t, "****7890", svc.MaskAccountNumber("1234567890"))
	assert.Equal(t, "****0021", svc.MaskRoutingNumber("021000021"))
	assert.Equal(t, "****1234", svc.MaskAccountNumber("1234"))
	assert.Equal(t, "****", svc.MaskAccountNumber("123"))
	assert.Equal(t, "****", svc.MaskAccountNumber(""))
}

func flipHexDigit(s string) string {
	b := []byte(s)
	if b[0] == '0' {
		b[0] = '1'
	} else {
		b[0] = '0'
	}
	return string(b)
}

package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashService_RoundTrip(t *testing.T) {
	svc := NewHashService()

	hash, err := svc.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := svc.Verify("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Verify("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashService_UniqueSalts(t *testing.T) {
	svc := NewHashService()

	a, err := svc.Hash("password123")
	require.NoError(t, err)
	b, err := svc.Hash("password123")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHashService_Verify_MalformedHash(t *testing.T) {
	svc := NewHashService()

	_, err := svc.Verify("password", "not-a-hash")
	assert.Error(t, err)

	_, err = svc.Verify("password", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA")
	assert.Error(t, err)
}

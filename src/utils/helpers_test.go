package utils

import (
	"crypto/rand"
	"os"
	"strings"
	"testing"

	"tiketku/src/types"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestEncryptDecryptRoundtrip(t *testing.T) {
	key := make([]byte, 32)
	rand.Read(key)

	message := "ticket:abc-123"
	encrypted, err := EncryptMessage(key, message)
	assert.Nil(t, err)
	assert.NotEqual(t, message, encrypted)

	decrypted, err := DecryptMessage(key, encrypted)
	assert.Nil(t, err)
	assert.Equal(t, message, *decrypted)
}

func TestDecryptWithWrongKey(t *testing.T) {
	key := make([]byte, 32)
	rand.Read(key)
	encrypted, err := EncryptMessage(key, "secret")
	assert.Nil(t, err)

	wrong := make([]byte, 32)
	rand.Read(wrong)
	_, err = DecryptMessage(wrong, encrypted)
	assert.NotNil(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("correct horse battery staple")
	assert.Nil(t, err)
	assert.NotEqual(t, "correct horse battery staple", hashed)
	assert.True(t, VerifyPassword(hashed, "correct horse battery staple"))
	assert.False(t, VerifyPassword(hashed, "wrong password"))
}

func TestGenerateReferralCode(t *testing.T) {
	code := GenerateReferralCode("John Doe")
	parts := strings.Split(code, "-")
	assert.GreaterOrEqual(t, len(parts), 2)
	assert.Equal(t, strings.ToUpper(code), code)

	other := GenerateReferralCode("John Doe")
	assert.NotEqual(t, code, other)

	anon := GenerateReferralCode("")
	assert.True(t, strings.HasPrefix(anon, "USER-"))
}

func TestGenerateJWT(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateJWT("someone@example.com", 42, types.ROLE_CUSTOMER)
	assert.Nil(t, err)

	claims := &types.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	assert.Nil(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "someone@example.com", claims.Email)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, string(types.ROLE_CUSTOMER), claims.Role)
}

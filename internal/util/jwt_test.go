package util

import (
	"testing"
	"time"

	"school_quiz_backend/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestGenerateAndParseJWT(t *testing.T) {
	school := uint(4)
	user := &model.User{Email: "f@example.com", Role: model.Faculty, SchoolID: &school}
	user.ID = 9

	token, err := GenerateJWT(user, secret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, uint(9), claims.UserID)
	assert.Equal(t, model.Faculty, claims.Role)
	assert.Equal(t, "f@example.com", claims.Email)
	require.NotNil(t, claims.SchoolID)
	assert.Equal(t, school, *claims.SchoolID)
	assert.Equal(t, "9", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestParseJWTRequiresIssuerAndExpiry(t *testing.T) {
	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer}})
	signed, err := noExp.SignedString([]byte(secret))
	require.NoError(t, err)
	_, err = ParseJWT(signed, secret)
	assert.Error(t, err)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})
	signed, err = foreign.SignedString([]byte(secret))
	require.NoError(t, err)
	_, err = ParseJWT(signed, secret)
	assert.Error(t, err)
}

func TestParseJWTRejects(t *testing.T) {
	user := &model.User{Role: model.Student}

	expired, err := GenerateJWT(user, secret, -time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT(expired, secret)
	assert.Error(t, err)

	valid, err := GenerateJWT(user, secret, time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT(valid, "another-secret-another-secret-xx")
	assert.Error(t, err)

	// 非 HS256 的签名算法一律拒绝
	other := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})
	signed, err := other.SignedString([]byte(secret))
	require.NoError(t, err)
	_, err = ParseJWT(signed, secret)
	assert.Error(t, err)
}

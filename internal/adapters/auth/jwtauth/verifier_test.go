package jwtauth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petpals/internal/ports/auth"
)

func TestVerifier_RoundTrip(t *testing.T) {
	v := NewVerifier("s3cret", "petpals")

	tok, err := v.Issue(auth.Claims{UserID: "u1", Email: "ana@example.com", DisplayName: "Ana"}, time.Hour)
	require.NoError(t, err)

	c, err := v.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", c.UserID)
	assert.Equal(t, "Ana", c.DisplayName)
	assert.Equal(t, "ana@example.com", c.Email)
}

func TestVerifier_Expired(t *testing.T) {
	v := NewVerifier("s3cret", "petpals")
	v.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := v.Issue(auth.Claims{UserID: "u1"}, time.Hour)
	require.NoError(t, err)

	v.now = time.Now
	_, err = v.Verify(context.Background(), tok)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifier_WrongSecret(t *testing.T) {
	tok, err := NewVerifier("other", "petpals").Issue(auth.Claims{UserID: "u1"}, time.Hour)
	require.NoError(t, err)

	_, err = NewVerifier("s3cret", "petpals").Verify(context.Background(), tok)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifier_WrongIssuer(t *testing.T) {
	tok, err := NewVerifier("s3cret", "someone-else").Issue(auth.Claims{UserID: "u1"}, time.Hour)
	require.NoError(t, err)

	_, err = NewVerifier("s3cret", "petpals").Verify(context.Background(), tok)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifier_RejectsNoneAlg(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "u1",
		Issuer:    "petpals",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewVerifier("s3cret", "petpals").Verify(context.Background(), tok)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifier_Empty(t *testing.T) {
	_, err := NewVerifier("s3cret", "").Verify(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrTokenEmpty)
}

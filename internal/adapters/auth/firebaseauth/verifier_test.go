package firebaseauth

import (
	"context"
	"errors"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petpals/internal/ports/auth"
)

type fakeVerifier struct {
	token *fbauth.Token
	err   error
}

func (f fakeVerifier) VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	return f.token, f.err
}

func TestVerify_MapsClaims(t *testing.T) {
	v := &Verifier{client: fakeVerifier{token: &fbauth.Token{
		UID: "firebase-uid",
		Claims: map[string]interface{}{
			"email": "ana@example.com",
			"name":  "Ana",
		},
	}}}

	c, err := v.Verify(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: "firebase-uid", Email: "ana@example.com", DisplayName: "Ana"}, c)
}

func TestVerify_Rejected(t *testing.T) {
	v := &Verifier{client: fakeVerifier{err: errors.New("ID token has expired")}}

	_, err := v.Verify(context.Background(), "id-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerify_Empty(t *testing.T) {
	v := &Verifier{client: fakeVerifier{}}
	_, err := v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrTokenEmpty)
}

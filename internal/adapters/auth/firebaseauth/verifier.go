package firebaseauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"

	"petpals/internal/ports/auth"
)

var ErrTokenEmpty = errors.New("token is empty")

// tokenVerifier es lo que usamos de *auth.Client de Firebase.
type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// Verifier implementa auth.AuthVerifier con ID tokens de Firebase Auth,
// el mismo proveedor de identidad que usa la app web.
type Verifier struct {
	client tokenVerifier
}

func NewVerifier(ctx context.Context, app *firebase.App) (*Verifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return &Verifier{client: client}, nil
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	t, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}

	uid := strings.TrimSpace(t.UID)
	if uid == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing uid", auth.ErrInvalidToken)
	}

	return auth.Claims{
		UserID:      uid,
		Email:       claimString(t.Claims, "email"),
		DisplayName: claimString(t.Claims, "name"),
	}, nil
}

func claimString(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"petpals/internal/ports/auth"
)

type stubVerifier struct {
	claims auth.Claims
	err    error
	got    string
}

func (s *stubVerifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	s.got = token
	return s.claims, s.err
}

func serve(mw func(http.Handler) http.Handler, req *http.Request) (auth.Claims, bool) {
	var (
		claims auth.Claims
		ok     bool
	)
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok = GetClaims(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), req)
	return claims, ok
}

func TestAuthContext_DevHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderDebugUserID, " u1 ")
	req.Header.Set(HeaderDebugUserName, "Ana")
	req.Header.Set(HeaderDebugUserEmail, "ana@example.com")

	claims, ok := serve(AuthContext(nil, nil), req)
	assert.True(t, ok)
	assert.Equal(t, auth.Claims{UserID: "u1", DisplayName: "Ana", Email: "ana@example.com"}, claims)

	_, ok = serve(AuthContext(nil, nil), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestAuthContext_Verifier(t *testing.T) {
	v := &stubVerifier{claims: auth.Claims{UserID: "u1"}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc.def")
	claims, ok := serve(AuthContext(v, nil), req)
	assert.True(t, ok)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "abc.def", v.got)

	// Con verifier, los headers de debug se ignoran.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderDebugUserID, "intruder")
	_, ok = serve(AuthContext(v, nil), req)
	assert.False(t, ok)
}

func TestAuthContext_InvalidTokenContinuesAnonymous(t *testing.T) {
	v := &stubVerifier{err: errors.New("expired")}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc")
	_, ok := serve(AuthContext(v, nil), req)
	assert.False(t, ok)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "tok", bearerToken("Bearer tok"))
	assert.Equal(t, "tok", bearerToken("bearer  tok "))
	assert.Empty(t, bearerToken("Basic tok"))
	assert.Empty(t, bearerToken("tok"))
	assert.Empty(t, bearerToken(""))
}

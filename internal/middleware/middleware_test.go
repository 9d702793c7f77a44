package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodgram/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	claims *service.Claims
	err    error
	got    string
}

func (s *stubVerifier) Verify(_ context.Context, token string) (*service.Claims, error) {
	s.got = token
	return s.claims, s.err
}

func newContext(auth string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he), "got %v", err)
	return he.Code
}

func TestExtractClaims(t *testing.T) {
	v := &stubVerifier{claims: &service.Claims{UserID: 1}}

	ctx, _ := newContext("")
	_, err := extractClaims(ctx, v)
	require.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	for _, bad := range []string{"BadHeader", "Basic abc", "Token "} {
		ctx, _ = newContext(bad)
		_, err = extractClaims(ctx, v)
		require.Equal(t, http.StatusUnauthorized, statusOf(t, err), bad)
	}

	for _, scheme := range []string{"Token", "Bearer", "token"} {
		ctx, _ = newContext(scheme + " abc")
		claims, err := extractClaims(ctx, v)
		require.NoError(t, err)
		require.Equal(t, 1, claims.UserID)
		require.Equal(t, "abc", v.got)
	}

	ctx, _ = newContext("Token abc")
	_, err = extractClaims(ctx, &stubVerifier{err: service.ErrTokenRevoked})
	require.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestRequireAuth(t *testing.T) {
	v := &stubVerifier{claims: &service.Claims{UserID: 2}}
	called := false
	h := RequireAuth(v)(func(c echo.Context) error {
		called = true
		require.Equal(t, 2, UserID(c))
		return c.NoContent(http.StatusOK)
	})

	ctx, rec := newContext("Token ok")
	require.NoError(t, h(ctx))
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)

	called = false
	ctx, _ = newContext("")
	require.Equal(t, http.StatusUnauthorized, statusOf(t, h(ctx)))
	require.False(t, called)
}

func TestOptionalAuth(t *testing.T) {
	v := &stubVerifier{claims: &service.Claims{UserID: 3}}
	var seen int
	h := OptionalAuth(v)(func(c echo.Context) error {
		seen = UserID(c)
		return nil
	})

	ctx, _ := newContext("")
	require.NoError(t, h(ctx))
	require.Equal(t, 0, seen)
	require.Nil(t, Claims(ctx))

	ctx, _ = newContext("Bearer ok")
	require.NoError(t, h(ctx))
	require.Equal(t, 3, seen)

	ctx, _ = newContext("Bearer bad")
	err := OptionalAuth(&stubVerifier{err: errors.New("bad")})(func(echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})(ctx)
	require.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

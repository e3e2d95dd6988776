package jwt

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *TokenService {
	return NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 168*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateAccessToken("user_abc", "jane@example.com", "jane", "Jane Doe")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user_abc", claims.UserExtID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "jane", claims.UserName)
	assert.Equal(t, "Jane Doe", claims.FullName)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateRefreshToken("user_abc")
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user_abc", claims.UserExtID)
}

func TestGenerateRequiresIdentity(t *testing.T) {
	svc := newTestService()

	_, err := svc.GenerateAccessToken("", "jane@example.com", "jane", "Jane Doe")
	assert.Error(t, err)

	_, err = svc.GenerateRefreshToken("")
	assert.Error(t, err)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	svc := newTestService()
	other := NewTokenService("different-access", "different-refresh", 15*time.Minute, 168*time.Hour)

	accessToken, err := svc.GenerateAccessToken("user_abc", "jane@example.com", "jane", "Jane Doe")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(accessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	refreshToken, err := svc.GenerateRefreshToken("user_abc")
	require.NoError(t, err)

	_, err = other.ValidateRefreshToken(refreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateRejectsCrossTokenKind(t *testing.T) {
	svc := newTestService()

	// A refresh token must not verify as an access token: the secrets differ.
	refreshToken, err := svc.GenerateRefreshToken("user_abc")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(refreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewTokenService("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	accessToken, err := svc.GenerateAccessToken("user_abc", "jane@example.com", "jane", "Jane Doe")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(accessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)

	refreshToken, err := svc.GenerateRefreshToken("user_abc")
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(refreshToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := newTestService()

	_, err := svc.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestExtractAccessToken(t *testing.T) {
	e := echo.New()

	newContext := func(cookie, header string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: "accessToken", Value: cookie})
		}
		if header != "" {
			req.Header.Set(echo.HeaderAuthorization, header)
		}
		return e.NewContext(req, httptest.NewRecorder())
	}

	t.Run("cookie wins over header", func(t *testing.T) {
		c := newContext("cookie-token", "Bearer header-token")
		assert.Equal(t, "cookie-token", ExtractAccessToken(c))
	})

	t.Run("falls back to bearer header", func(t *testing.T) {
		c := newContext("", "Bearer header-token")
		assert.Equal(t, "header-token", ExtractAccessToken(c))
	})

	t.Run("empty when absent", func(t *testing.T) {
		c := newContext("", "")
		assert.Equal(t, "", ExtractAccessToken(c))
	})
}

func TestExtractRefreshToken(t *testing.T) {
	e := echo.New()

	t.Run("cookie wins over body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "cookie-token"})
		c := e.NewContext(req, httptest.NewRecorder())
		assert.Equal(t, "cookie-token", ExtractRefreshToken(c, "body-token"))
	})

	t.Run("falls back to body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		assert.Equal(t, "body-token", ExtractRefreshToken(c, "body-token"))
	})
}

package jwt

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/pravaah/backend/pkg/constant"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// AccessClaims carries the identity embedded in short-lived access tokens.
type AccessClaims struct {
	UserExtID string `json:"user_ext_id"`
	Email     string `json:"email"`
	UserName  string `json:"user_name"`
	FullName  string `json:"full_name"`
	jwt.RegisteredClaims
}

// RefreshClaims carries only the identity reference. The stored row value,
// not the signature alone, decides whether a refresh token is still live.
type RefreshClaims struct {
	UserExtID string `json:"user_ext_id"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies access and refresh tokens with distinct
// process-wide secrets.
type TokenService struct {
	accessKey     []byte
	refreshKey    []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewTokenService(accessSecret, refreshSecret string, accessExpiry, refreshExpiry time.Duration) *TokenService {
	return &TokenService{
		accessKey:     []byte(accessSecret),
		refreshKey:    []byte(refreshSecret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (s *TokenService) AccessExpiry() time.Duration  { return s.accessExpiry }
func (s *TokenService) RefreshExpiry() time.Duration { return s.refreshExpiry }

func (s *TokenService) GenerateAccessToken(extID, email, userName, fullName string) (string, error) {
	if extID == "" {
		return "", errors.New("user_ext_id cannot be empty")
	}
	if len(s.accessKey) == 0 {
		return "", errors.New("access secret cannot be empty")
	}

	claims := AccessClaims{
		UserExtID: extID,
		Email:     email,
		UserName:  userName,
		FullName:  fullName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.accessKey)
}

func (s *TokenService) GenerateRefreshToken(extID string) (string, error) {
	if extID == "" {
		return "", errors.New("user_ext_id cannot be empty")
	}
	if len(s.refreshKey) == 0 {
		return "", errors.New("refresh secret cannot be empty")
	}

	claims := RefreshClaims{
		UserExtID: extID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.refreshExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.refreshKey)
}

func (s *TokenService) ValidateAccessToken(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := s.parse(tokenStr, claims, s.accessKey); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *TokenService) ValidateRefreshToken(tokenStr string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := s.parse(tokenStr, claims, s.refreshKey); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *TokenService) parse(tokenStr string, claims jwt.Claims, key []byte) error {
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("invalid signing method")
		}
		return key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}
	if !token.Valid {
		return ErrTokenInvalid
	}
	return nil
}

// ExtractAccessToken pulls the access token from the accessToken cookie or
// the Authorization header, cookie first.
func ExtractAccessToken(c echo.Context) string {
	if cookie, err := c.Cookie(constant.CookieAccessToken); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	return strings.TrimPrefix(header, "Bearer ")
}

// ExtractRefreshToken pulls the refresh token from the refreshToken cookie,
// falling back to the parsed request body value.
func ExtractRefreshToken(c echo.Context, bodyToken string) string {
	if cookie, err := c.Cookie(constant.CookieRefreshToken); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return bodyToken
}

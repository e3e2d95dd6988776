package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pravaah/backend/pkg/constant"
	"github.com/pravaah/backend/pkg/jwt"
	"github.com/pravaah/backend/pkg/response"
)

// AuthUser is the identity attached to the request after token verification.
// Secret fields never appear here.
type AuthUser struct {
	ExtID      string `json:"ext_id"`
	UserName   string `json:"user_name"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Avatar     string `json:"avatar"`
	CoverImage string `json:"cover_image"`
}

// UserFinder resolves a token's subject against the credential store. A nil
// result means the user no longer exists and the token is dead.
type UserFinder interface {
	FindAuthUser(ctx context.Context, extID string) (*AuthUser, error)
}

// VerifyRequest validates the access token from the accessToken cookie or the
// Authorization header and attaches the resolved identity to the context.
func VerifyRequest(tokens *jwt.TokenService, users UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenStr := jwt.ExtractAccessToken(c)
			if tokenStr == "" {
				return response.Error(c, http.StatusUnauthorized, "unauthorized", "access token is required")
			}

			claims, err := tokens.ValidateAccessToken(tokenStr)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return response.Error(c, http.StatusUnauthorized, "unauthorized", "access token has expired")
				}
				return response.Error(c, http.StatusUnauthorized, "unauthorized", "invalid access token")
			}

			user, err := users.FindAuthUser(c.Request().Context(), claims.UserExtID)
			if err != nil {
				return response.Error(c, http.StatusInternalServerError, "internal_server_error", err.Error())
			}
			if user == nil {
				return response.Error(c, http.StatusUnauthorized, "unauthorized", "invalid access token")
			}

			c.Set(string(constant.CtxKeyUserExtID), user.ExtID)
			c.Set(string(constant.CtxKeyAuthUser), user)
			return next(c)
		}
	}
}

// GetAuthUser retrieves the verified identity set by VerifyRequest.
func GetAuthUser(c echo.Context) (*AuthUser, error) {
	user, ok := c.Get(string(constant.CtxKeyAuthUser)).(*AuthUser)
	if !ok || user == nil {
		return nil, errors.New("authenticated user not found in context")
	}
	return user, nil
}

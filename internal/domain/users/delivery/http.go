package delivery

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pravaah/backend/internal/domain/users"
	"github.com/pravaah/backend/pkg/constant"
	"github.com/pravaah/backend/pkg/jwt"
	"github.com/pravaah/backend/pkg/middleware"
	"github.com/pravaah/backend/pkg/response"
)

type UserUsecase interface {
	Register(ctx context.Context, payload users.RegisterRequest, avatar, cover *multipart.FileHeader) (*users.Profile, error)
	Login(ctx context.Context, payload users.LoginRequest) (*users.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*users.LoginResponse, error)
	Logout(ctx context.Context, extID string) error
	ChangePassword(ctx context.Context, extID string, payload users.ChangePasswordRequest) error
	RequestReset(ctx context.Context, email string) error
	ConsumeReset(ctx context.Context, payload users.ResetPasswordRequest) error
	GetProfileByExtID(ctx context.Context, extID string) (*users.Profile, error)
	UpdateAccount(ctx context.Context, extID string, payload users.UpdateAccountRequest) (*users.Profile, error)
	UpdateProfilePicture(ctx context.Context, extID string, avatar, cover *multipart.FileHeader) (*users.Profile, error)
	GetChannelProfile(ctx context.Context, userName, viewerExtID string) (*users.ChannelProfile, error)
	ToggleSubscription(ctx context.Context, subscriberExtID, channelExtID string) (bool, error)
	GetWatchHistory(ctx context.Context, extID string) ([]users.WatchHistoryEntry, error)
}

type Handler struct {
	usecase UserUsecase
	tokens  *jwt.TokenService
}

func NewHandler(usecase UserUsecase, tokens *jwt.TokenService) *Handler {
	return &Handler{
		usecase: usecase,
		tokens:  tokens,
	}
}

func (h *Handler) Register(c echo.Context) error {
	logger := middleware.GetLogger(c)
	ctx := c.Request().Context()

	var req users.RegisterRequest
	if err := c.Bind(&req); err != nil {
		logger.Error().Err(err).Msg("Failed to bind register request")
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		logger.Warn().Err(err).Msg("Register validation failed")
		return response.Error(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	avatar, err := c.FormFile("avatar")
	if err != nil {
		avatar = nil
	}
	cover, err := c.FormFile("coverImage")
	if err != nil {
		cover = nil
	}

	result, err := h.usecase.Register(ctx, req, avatar, cover)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to register user")
		return response.HandleError(c, err)
	}

	logger.Info().Str("user", result.ExtID).Msg("User registered successfully")
	return response.Success(c, http.StatusCreated, "user_registered_successfully", result)
}

func (h *Handler) Login(c echo.Context) error {
	logger := middleware.GetLogger(c)
	ctx := c.Request().Context()

	var req users.LoginRequest
	if err := c.Bind(&req); err != nil {
		logger.Error().Err(err).Msg("Failed to bind login request")
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}

	result, err := h.usecase.Login(ctx, req)
	if err != nil {
		logger.Warn().Msg("Login failed")
		return response.HandleError(c, err)
	}

	h.setAuthCookies(c, result.TokenPair)

	logger.Info().Str("user", result.User.ExtID).Msg("User logged in successfully")
	return response.Success(c, http.StatusOK, "login_successful", result)
}

func (h *Handler) RefreshToken(c echo.Context) error {
	logger := middleware.GetLogger(c)
	ctx := c.Request().Context()

	var req users.RefreshRequest
	// Body is optional: the token usually arrives in the cookie.
	_ = c.Bind(&req)

	token := jwt.ExtractRefreshToken(c, req.RefreshToken)

	result, err := h.usecase.Refresh(ctx, token)
	if err != nil {
		logger.Warn().Msg("Token refresh failed")
		return response.HandleError(c, err)
	}

	h.setAuthCookies(c, result.TokenPair)

	return response.Success(c, http.StatusOK, "token_refreshed_successfully", result)
}

func (h *Handler) Logout(c echo.Context) error {
	logger := middleware.GetLogger(c)
	ctx := c.Request().Context()

	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	if err := h.usecase.Logout(ctx, user.ExtID); err != nil {
		logger.Error().Err(err).Msg("Logout failed")
		return response.HandleError(c, err)
	}

	h.clearAuthCookies(c)

	logger.Info().Str("user", user.ExtID).Msg("User logged out")
	return response.Success(c, http.StatusOK, "logout_successful", map[string]string{})
}

func (h *Handler) ChangePassword(c echo.Context) error {
	logger := middleware.GetLogger(c)
	ctx := c.Request().Context()

	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	var req users.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}

	if err := h.usecase.ChangePassword(ctx, user.ExtID, req); err != nil {
		logger.Warn().Str("user", user.ExtID).Msg("Password change rejected")
		return response.HandleError(c, err)
	}

	logger.Info().Str("user", user.ExtID).Msg("Password changed")
	return response.Success(c, http.StatusOK, "password_changed_successfully", map[string]string{})
}

func (h *Handler) ForgotPasswordRequest(c echo.Context) error {
	logger := middleware.GetLogger(c)
	ctx := c.Request().Context()

	var req users.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := h.usecase.RequestReset(ctx, req.Email); err != nil {
		logger.Error().Err(err).Msg("Password reset request failed")
		return response.HandleError(c, err)
	}

	// Same answer whether or not the address has an account.
	return response.Success(c, http.StatusOK, "reset_link_sent_if_account_exists", map[string]string{})
}

func (h *Handler) ForgotPasswordVerify(c echo.Context) error {
	logger := middleware.GetLogger(c)
	ctx := c.Request().Context()

	var req users.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}

	if err := h.usecase.ConsumeReset(ctx, req); err != nil {
		logger.Warn().Msg("Password reset rejected")
		return response.HandleError(c, err)
	}

	logger.Info().Msg("Password reset completed")
	return response.Success(c, http.StatusOK, "password_reset_successfully", map[string]string{})
}

func (h *Handler) setAuthCookies(c echo.Context, pair users.TokenPair) {
	c.SetCookie(&http.Cookie{
		Name:     constant.CookieAccessToken,
		Value:    pair.AccessToken,
		Path:     "/",
		MaxAge:   int(h.tokens.AccessExpiry().Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	c.SetCookie(&http.Cookie{
		Name:     constant.CookieRefreshToken,
		Value:    pair.RefreshToken,
		Path:     "/",
		MaxAge:   int(h.tokens.RefreshExpiry().Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (h *Handler) clearAuthCookies(c echo.Context) {
	for _, name := range []string{constant.CookieAccessToken, constant.CookieRefreshToken} {
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
		})
	}
}

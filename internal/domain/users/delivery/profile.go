package delivery

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pravaah/backend/internal/domain/users"
	"github.com/pravaah/backend/pkg/jwt"
	"github.com/pravaah/backend/pkg/middleware"
	"github.com/pravaah/backend/pkg/response"
)

func (h *Handler) GetCurrentUser(c echo.Context) error {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	result, err := h.usecase.GetProfileByExtID(c.Request().Context(), user.ExtID)
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "success", result)
}

func (h *Handler) UpdateAccountDetails(c echo.Context) error {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	var req users.UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}

	result, err := h.usecase.UpdateAccount(c.Request().Context(), user.ExtID, req)
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "account_updated_successfully", result)
}

func (h *Handler) UpdateProfilePicture(c echo.Context) error {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	avatar, err := c.FormFile("avatar")
	if err != nil {
		avatar = nil
	}
	cover, err := c.FormFile("coverImage")
	if err != nil {
		cover = nil
	}

	result, err := h.usecase.UpdateProfilePicture(c.Request().Context(), user.ExtID, avatar, cover)
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "profile_picture_updated", result)
}

// GetProfile is public; when a valid access token is present the response
// also reports whether the caller subscribes to the channel.
func (h *Handler) GetProfile(c echo.Context) error {
	viewerExtID := ""
	if tokenStr := jwt.ExtractAccessToken(c); tokenStr != "" {
		if claims, err := h.tokens.ValidateAccessToken(tokenStr); err == nil {
			viewerExtID = claims.UserExtID
		}
	}

	result, err := h.usecase.GetChannelProfile(c.Request().Context(), c.Param("userName"), viewerExtID)
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "success", result)
}

func (h *Handler) SubscribeUser(c echo.Context) error {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	var req users.SubscribeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	subscribed, err := h.usecase.ToggleSubscription(c.Request().Context(), user.ExtID, req.ChannelExtID)
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "subscription_toggled", map[string]bool{
		"subscribed": subscribed,
	})
}

func (h *Handler) GetWatchHistory(c echo.Context) error {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	result, err := h.usecase.GetWatchHistory(c.Request().Context(), user.ExtID)
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "success", result)
}

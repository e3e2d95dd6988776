package delivery

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pravaah/backend/internal/domain/likes"
	"github.com/pravaah/backend/pkg/middleware"
	"github.com/pravaah/backend/pkg/response"
)

type LikeUsecase interface {
	Toggle(ctx context.Context, userExtID string, kind likes.TargetKind, targetExtID string) (bool, error)
	GetLikedVideos(ctx context.Context, userExtID string) ([]likes.LikedVideo, error)
}

type Handler struct {
	usecase LikeUsecase
}

func NewHandler(usecase LikeUsecase) *Handler {
	return &Handler{usecase: usecase}
}

func (h *Handler) ToggleVideoLike(c echo.Context) error {
	return h.toggle(c, likes.TargetVideo, c.Param("videoId"))
}

func (h *Handler) ToggleCommentLike(c echo.Context) error {
	return h.toggle(c, likes.TargetComment, c.Param("commentId"))
}

func (h *Handler) ToggleTweetLike(c echo.Context) error {
	return h.toggle(c, likes.TargetTweet, c.Param("tweetId"))
}

func (h *Handler) toggle(c echo.Context, kind likes.TargetKind, targetExtID string) error {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	liked, err := h.usecase.Toggle(c.Request().Context(), user.ExtID, kind, targetExtID)
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "like_toggled", likes.ToggleResponse{Liked: liked})
}

func (h *Handler) GetLikedVideos(c echo.Context) error {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	result, err := h.usecase.GetLikedVideos(c.Request().Context(), user.ExtID)
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "success", result)
}

package delivery

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pravaah/backend/internal/domain/videos"
	"github.com/pravaah/backend/pkg/middleware"
	"github.com/pravaah/backend/pkg/response"
)

type VideoUsecase interface {
	Publish(ctx context.Context, ownerExtID string, payload videos.PublishRequest, videoFile, thumbnail *multipart.FileHeader) (*videos.Video, error)
	Get(ctx context.Context, extID, viewerExtID string) (*videos.VideoDetail, error)
	Update(ctx context.Context, extID, ownerExtID string, payload videos.UpdateRequest, videoFile, thumbnail *multipart.FileHeader) (*videos.Video, error)
	Delete(ctx context.Context, extID, ownerExtID string) error
	TogglePublishStatus(ctx context.Context, extID, ownerExtID string) (*videos.Video, error)
	List(ctx context.Context, q videos.ListQuery) (*videos.ListResponse, error)
	GetChannelStats(ctx context.Context, ownerExtID string) (*videos.ChannelStats, error)
}

type Handler struct {
	usecase VideoUsecase
}

func NewHandler(usecase VideoUsecase) *Handler {
	return &Handler{usecase: usecase}
}

func (h *Handler) PublishVideo(c echo.Context) error {
	logger := middleware.GetLogger(c)

	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	var req videos.PublishRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	videoFile, err := c.FormFile("video")
	if err != nil {
		videoFile = nil
	}
	thumbnail, err := c.FormFile("thumbnail")
	if err != nil {
		thumbnail = nil
	}

	result, err := h.usecase.Publish(c.Request().Context(), user.ExtID, req, videoFile, thumbnail)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to publish video")
		return response.HandleError(c, err)
	}

	logger.Info().Str("video", result.ExtID).Msg("Video published")
	return response.Success(c, http.StatusCreated, "video_published_successfully", result)
}

func (h *Handler) GetVideo(c echo.Context) error {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	result, err := h.usecase.Get(c.Request().Context(), c.Param("videoId"), user.ExtID)
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "success", result)
}

func (h *Handler) UpdateVideo(c echo.Context) error {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	var req videos.UpdateRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}

	videoFile, err := c.FormFile("video")
	if err != nil {
		videoFile = nil
	}
	thumbnail, err := c.FormFile("thumbnail")
	if err != nil {
		thumbnail = nil
	}

	result, err := h.usecase.Update(c.Request().Context(), c.Param("videoId"), user.ExtID, req, videoFile, thumbnail)
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "video_updated_successfully", result)
}

func (h *Handler) DeleteVideo(c echo.Context) error {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	if err := h.usecase.Delete(c.Request().Context(), c.Param("videoId"), user.ExtID); err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "video_deleted_successfully", map[string]string{})
}

func (h *Handler) TogglePublishStatus(c echo.Context) error {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	result, err := h.usecase.TogglePublishStatus(c.Request().Context(), c.Param("videoId"), user.ExtID)
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "publish_status_toggled", result)
}

func (h *Handler) GetAllVideos(c echo.Context) error {
	var q videos.ListQuery
	if err := c.Bind(&q); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_query", err.Error())
	}

	result, err := h.usecase.List(c.Request().Context(), q)
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "success", result)
}

func (h *Handler) GetChannelStats(c echo.Context) error {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	result, err := h.usecase.GetChannelStats(c.Request().Context(), user.ExtID)
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "success", result)
}

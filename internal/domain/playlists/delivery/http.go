package delivery

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pravaah/backend/internal/domain/playlists"
	"github.com/pravaah/backend/pkg/middleware"
	"github.com/pravaah/backend/pkg/response"
)

type PlaylistUsecase interface {
	Create(ctx context.Context, ownerExtID string, req playlists.CreateRequest) (*playlists.Playlist, error)
	ListOwn(ctx context.Context, ownerExtID string) ([]playlists.Playlist, error)
	Get(ctx context.Context, extID string) (*playlists.PlaylistDetail, error)
	Update(ctx context.Context, extID, ownerExtID string, req playlists.UpdateRequest) (*playlists.Playlist, error)
	Delete(ctx context.Context, extID, ownerExtID string) error
	AddVideo(ctx context.Context, playlistExtID, videoExtID, ownerExtID string) error
	RemoveVideo(ctx context.Context, playlistExtID, videoExtID, ownerExtID string) error
}

type Handler struct {
	usecase PlaylistUsecase
}

func NewHandler(usecase PlaylistUsecase) *Handler {
	return &Handler{usecase: usecase}
}

func (h *Handler) CreatePlaylist(c echo.Context) error {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	var req playlists.CreateRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	result, err := h.usecase.Create(c.Request().Context(), user.ExtID, req)
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusCreated, "playlist_created_successfully", result)
}

func (h *Handler) GetUserPlaylists(c echo.Context) error {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	result, err := h.usecase.ListOwn(c.Request().Context(), user.ExtID)
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "success", result)
}

func (h *Handler) GetPlaylist(c echo.Context) error {
	result, err := h.usecase.Get(c.Request().Context(), c.Param("playlistId"))
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "success", result)
}

func (h *Handler) UpdatePlaylist(c echo.Context) error {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	var req playlists.UpdateRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}

	result, err := h.usecase.Update(c.Request().Context(), c.Param("playlistId"), user.ExtID, req)
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "playlist_updated_successfully", result)
}

func (h *Handler) DeletePlaylist(c echo.Context) error {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	if err := h.usecase.Delete(c.Request().Context(), c.Param("playlistId"), user.ExtID); err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "playlist_deleted_successfully", map[string]string{})
}

func (h *Handler) AddVideoToPlaylist(c echo.Context) error {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	err = h.usecase.AddVideo(c.Request().Context(), c.Param("playlistId"), c.Param("videoId"), user.ExtID)
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "video_added_to_playlist", map[string]string{})
}

func (h *Handler) RemoveVideoFromPlaylist(c echo.Context) error {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	err = h.usecase.RemoveVideo(c.Request().Context(), c.Param("playlistId"), c.Param("videoId"), user.ExtID)
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "video_removed_from_playlist", map[string]string{})
}

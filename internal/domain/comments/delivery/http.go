package delivery

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pravaah/backend/internal/domain/comments"
	"github.com/pravaah/backend/pkg/middleware"
	"github.com/pravaah/backend/pkg/response"
)

type CommentUsecase interface {
	Add(ctx context.Context, videoExtID, ownerExtID, content string) (*comments.Comment, error)
	ListForVideo(ctx context.Context, videoExtID string, page, limit int) (*comments.ListResponse, error)
	Update(ctx context.Context, extID, ownerExtID, content string) (*comments.Comment, error)
	Delete(ctx context.Context, extID, ownerExtID string) error
}

type Handler struct {
	usecase CommentUsecase
}

func NewHandler(usecase CommentUsecase) *Handler {
	return &Handler{usecase: usecase}
}

func (h *Handler) AddComment(c echo.Context) error {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	var req comments.AddRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}

	result, err := h.usecase.Add(c.Request().Context(), c.Param("videoId"), user.ExtID, req.Content)
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusCreated, "comment_added_successfully", result)
}

func (h *Handler) GetVideoComments(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.usecase.ListForVideo(c.Request().Context(), c.Param("videoId"), page, limit)
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "success", result)
}

func (h *Handler) UpdateComment(c echo.Context) error {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	var req comments.UpdateRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}

	result, err := h.usecase.Update(c.Request().Context(), c.Param("commentId"), user.ExtID, req.Content)
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "comment_updated_successfully", result)
}

func (h *Handler) DeleteComment(c echo.Context) error {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	if err := h.usecase.Delete(c.Request().Context(), c.Param("commentId"), user.ExtID); err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "comment_deleted_successfully", map[string]string{})
}

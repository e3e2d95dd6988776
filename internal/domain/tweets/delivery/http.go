package delivery

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pravaah/backend/internal/domain/tweets"
	"github.com/pravaah/backend/pkg/middleware"
	"github.com/pravaah/backend/pkg/response"
)

type TweetUsecase interface {
	Create(ctx context.Context, ownerExtID, content string) (*tweets.Tweet, error)
	ListOwn(ctx context.Context, ownerExtID string) ([]tweets.Tweet, error)
	Update(ctx context.Context, extID, ownerExtID, content string) (*tweets.Tweet, error)
	Delete(ctx context.Context, extID, ownerExtID string) error
}

type Handler struct {
	usecase TweetUsecase
}

func NewHandler(usecase TweetUsecase) *Handler {
	return &Handler{usecase: usecase}
}

func (h *Handler) CreateTweet(c echo.Context) error {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	var req tweets.CreateRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}

	result, err := h.usecase.Create(c.Request().Context(), user.ExtID, req.Content)
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusCreated, "tweet_created_successfully", result)
}

func (h *Handler) GetUserTweets(c echo.Context) error {
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

func (h *Handler) UpdateTweet(c echo.Context) error {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	var req tweets.UpdateRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}

	result, err := h.usecase.Update(c.Request().Context(), c.Param("tweetId"), user.ExtID, req.Content)
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "tweet_updated_successfully", result)
}

func (h *Handler) DeleteTweet(c echo.Context) error {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	if err := h.usecase.Delete(c.Request().Context(), c.Param("tweetId"), user.ExtID); err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, http.StatusOK, "tweet_deleted_successfully", map[string]string{})
}

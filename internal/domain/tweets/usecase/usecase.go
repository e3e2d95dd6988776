package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pravaah/backend/internal/domain/tweets"
	"github.com/pravaah/backend/pkg/response"
	"github.com/segmentio/ksuid"
)

type TweetRepository interface {
	Create(ctx context.Context, tweet tweets.Tweet) error
	FindByExtID(ctx context.Context, extID string) (*tweets.Tweet, error)
	ListByOwner(ctx context.Context, ownerExtID string) ([]tweets.Tweet, error)
	Update(ctx context.Context, extID, content string) error
	Delete(ctx context.Context, extID, ownerExtID string) (int64, error)
}

type Usecase struct {
	repo TweetRepository
}

func NewUsecase(repo TweetRepository) *Usecase {
	return &Usecase{repo: repo}
}

func (u Usecase) Create(ctx context.Context, ownerExtID, content string) (*tweets.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, response.ValidationError("tweet content is required")
	}
	if len(content) > 280 {
		return nil, response.ValidationError("tweet cannot exceed 280 characters")
	}

	tweet := tweets.Tweet{
		ExtID:      "tweet_" + ksuid.New().String(),
		OwnerExtID: ownerExtID,
		Content:    content,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := u.repo.Create(ctx, tweet); err != nil {
		return nil, response.InternalServerError(err)
	}
	return &tweet, nil
}

func (u Usecase) ListOwn(ctx context.Context, ownerExtID string) ([]tweets.Tweet, error) {
	list, err := u.repo.ListByOwner(ctx, ownerExtID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	return list, nil
}

// Update distinguishes a missing tweet (404) from someone else's (403).
func (u Usecase) Update(ctx context.Context, extID, ownerExtID, content string) (*tweets.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, response.ValidationError("tweet content is required")
	}
	if len(content) > 280 {
		return nil, response.ValidationError("tweet cannot exceed 280 characters")
	}

	tweet, err := u.repo.FindByExtID(ctx, extID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if tweet == nil {
		return nil, response.NotFound("tweet_not_found")
	}
	if tweet.OwnerExtID != ownerExtID {
		return nil, response.NewError(http.StatusForbidden, "not_authorized_to_update_tweet", nil)
	}

	if err := u.repo.Update(ctx, extID, content); err != nil {
		return nil, response.InternalServerError(err)
	}
	tweet.Content = content
	return tweet, nil
}

func (u Usecase) Delete(ctx context.Context, extID, ownerExtID string) error {
	affected, err := u.repo.Delete(ctx, extID, ownerExtID)
	if err != nil {
		return response.InternalServerError(err)
	}
	if affected == 0 {
		return response.NotFound("tweet_not_found_or_access_denied")
	}
	return nil
}

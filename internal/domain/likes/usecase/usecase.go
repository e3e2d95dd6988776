package usecase

import (
	"context"
	"time"

	"github.com/pravaah/backend/internal/domain/likes"
	"github.com/pravaah/backend/pkg/response"
)

type LikeRepository interface {
	Find(ctx context.Context, userExtID string, kind likes.TargetKind, targetExtID string) (*likes.Like, error)
	Create(ctx context.Context, like likes.Like) error
	Delete(ctx context.Context, id int) error
	ListLikedVideos(ctx context.Context, userExtID string) ([]likes.LikedVideo, error)
}

type Usecase struct {
	repo LikeRepository
}

func NewUsecase(repo LikeRepository) *Usecase {
	return &Usecase{repo: repo}
}

// Toggle likes the target, or removes an existing like. The result reports
// the state after the call, so repeating the request flips it back.
func (u Usecase) Toggle(ctx context.Context, userExtID string, kind likes.TargetKind, targetExtID string) (bool, error) {
	if targetExtID == "" {
		return false, response.ValidationError("target id is required")
	}

	existing, err := u.repo.Find(ctx, userExtID, kind, targetExtID)
	if err != nil {
		return false, response.InternalServerError(err)
	}

	if existing != nil {
		if err := u.repo.Delete(ctx, existing.ID); err != nil {
			return false, response.InternalServerError(err)
		}
		return false, nil
	}

	like := likes.Like{
		LikedByExtID: userExtID,
		CreatedAt:    time.Now(),
	}
	switch kind {
	case likes.TargetComment:
		like.CommentExtID = targetExtID
	case likes.TargetTweet:
		like.TweetExtID = targetExtID
	default:
		like.VideoExtID = targetExtID
	}

	if err := u.repo.Create(ctx, like); err != nil {
		return false, response.InternalServerError(err)
	}
	return true, nil
}

func (u Usecase) GetLikedVideos(ctx context.Context, userExtID string) ([]likes.LikedVideo, error) {
	result, err := u.repo.ListLikedVideos(ctx, userExtID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	return result, nil
}

package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/pravaah/backend/internal/domain/comments"
	"github.com/pravaah/backend/pkg/response"
	"github.com/segmentio/ksuid"
)

type CommentRepository interface {
	Create(ctx context.Context, comment comments.Comment) error
	FindByExtID(ctx context.Context, extID string) (*comments.Comment, error)
	ListForVideo(ctx context.Context, videoExtID string, page, limit int) ([]comments.CommentDetail, error)
	Update(ctx context.Context, extID, ownerExtID, content string) (int64, error)
	Delete(ctx context.Context, extID, ownerExtID string) (int64, error)
}

// VideoChecker reports whether a video exists, so comments cannot be
// attached to missing videos.
type VideoChecker interface {
	Exists(ctx context.Context, videoExtID string) (bool, error)
}

type Usecase struct {
	repo   CommentRepository
	videos VideoChecker
}

func NewUsecase(repo CommentRepository, videos VideoChecker) *Usecase {
	return &Usecase{repo: repo, videos: videos}
}

func (u Usecase) Add(ctx context.Context, videoExtID, ownerExtID, content string) (*comments.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, response.ValidationError("comment content is required")
	}
	if len(content) > 280 {
		return nil, response.ValidationError("comment cannot exceed 280 characters")
	}

	exists, err := u.videos.Exists(ctx, videoExtID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if !exists {
		return nil, response.NotFound("video_not_found")
	}

	comment := comments.Comment{
		ExtID:      "comment_" + ksuid.New().String(),
		VideoExtID: videoExtID,
		OwnerExtID: ownerExtID,
		Content:    content,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := u.repo.Create(ctx, comment); err != nil {
		return nil, response.InternalServerError(err)
	}
	return &comment, nil
}

func (u Usecase) ListForVideo(ctx context.Context, videoExtID string, page, limit int) (*comments.ListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	list, err := u.repo.ListForVideo(ctx, videoExtID, page, limit)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	return &comments.ListResponse{
		Comments: list,
		Page:     page,
		Limit:    limit,
	}, nil
}

func (u Usecase) Update(ctx context.Context, extID, ownerExtID, content string) (*comments.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, response.ValidationError("comment content is required")
	}
	if len(content) > 280 {
		return nil, response.ValidationError("comment cannot exceed 280 characters")
	}

	affected, err := u.repo.Update(ctx, extID, ownerExtID, content)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if affected == 0 {
		return nil, response.NotFound("comment_not_found_or_access_denied")
	}
	return u.repo.FindByExtID(ctx, extID)
}

func (u Usecase) Delete(ctx context.Context, extID, ownerExtID string) error {
	affected, err := u.repo.Delete(ctx, extID, ownerExtID)
	if err != nil {
		return response.InternalServerError(err)
	}
	if affected == 0 {
		return response.NotFound("comment_not_found_or_access_denied")
	}
	return nil
}

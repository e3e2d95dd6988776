package repository

import (
	"context"
	"errors"

	"github.com/pravaah/backend/internal/domain/comments"
	"github.com/pravaah/backend/internal/domain/users"
	"gorm.io/gorm"
)

type Comment struct {
	db *gorm.DB
}

func NewComment(db *gorm.DB) *Comment {
	return &Comment{db: db}
}

func (c Comment) Create(ctx context.Context, comment comments.Comment) error {
	return c.db.WithContext(ctx).Create(&comment).Error
}

func (c Comment) FindByExtID(ctx context.Context, extID string) (*comments.Comment, error) {
	var comment comments.Comment
	err := c.db.WithContext(ctx).Where("ext_id = ?", extID).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

func (c Comment) ListForVideo(ctx context.Context, videoExtID string, page, limit int) ([]comments.CommentDetail, error) {
	var rows []comments.Comment
	err := c.db.WithContext(ctx).
		Where("video_ext_id = ?", videoExtID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	ownerIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		ownerIDs = append(ownerIDs, row.OwnerExtID)
	}

	owners := map[string]comments.OwnerSummary{}
	if len(ownerIDs) > 0 {
		var userRows []users.User
		err := c.db.WithContext(ctx).
			Select("ext_id", "user_name", "avatar").
			Where("ext_id IN ?", ownerIDs).
			Find(&userRows).Error
		if err != nil {
			return nil, err
		}
		for _, row := range userRows {
			owners[row.ExtID] = comments.OwnerSummary{
				ExtID:    row.ExtID,
				UserName: row.UserName,
				Avatar:   row.Avatar,
			}
		}
	}

	details := make([]comments.CommentDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, comments.CommentDetail{
			Comment: row,
			Owner:   owners[row.OwnerExtID],
		})
	}
	return details, nil
}

func (c Comment) Update(ctx context.Context, extID, ownerExtID, content string) (int64, error) {
	res := c.db.WithContext(ctx).
		Model(&comments.Comment{}).
		Where("ext_id = ? AND owner_ext_id = ?", extID, ownerExtID).
		Update("content", content)
	return res.RowsAffected, res.Error
}

func (c Comment) Delete(ctx context.Context, extID, ownerExtID string) (int64, error) {
	res := c.db.WithContext(ctx).
		Where("ext_id = ? AND owner_ext_id = ?", extID, ownerExtID).
		Delete(&comments.Comment{})
	return res.RowsAffected, res.Error
}

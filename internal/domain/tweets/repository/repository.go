package repository

import (
	"context"
	"errors"

	"github.com/pravaah/backend/internal/domain/tweets"
	"gorm.io/gorm"
)

type Tweet struct {
	db *gorm.DB
}

func NewTweet(db *gorm.DB) *Tweet {
	return &Tweet{db: db}
}

func (t Tweet) Create(ctx context.Context, tweet tweets.Tweet) error {
	return t.db.WithContext(ctx).Create(&tweet).Error
}

func (t Tweet) FindByExtID(ctx context.Context, extID string) (*tweets.Tweet, error) {
	var tweet tweets.Tweet
	err := t.db.WithContext(ctx).Where("ext_id = ?", extID).First(&tweet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tweet, nil
}

func (t Tweet) ListByOwner(ctx context.Context, ownerExtID string) ([]tweets.Tweet, error) {
	var list []tweets.Tweet
	err := t.db.WithContext(ctx).
		Where("owner_ext_id = ?", ownerExtID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (t Tweet) Update(ctx context.Context, extID, content string) error {
	return t.db.WithContext(ctx).
		Model(&tweets.Tweet{}).
		Where("ext_id = ?", extID).
		Update("content", content).Error
}

func (t Tweet) Delete(ctx context.Context, extID, ownerExtID string) (int64, error) {
	res := t.db.WithContext(ctx).
		Where("ext_id = ? AND owner_ext_id = ?", extID, ownerExtID).
		Delete(&tweets.Tweet{})
	return res.RowsAffected, res.Error
}

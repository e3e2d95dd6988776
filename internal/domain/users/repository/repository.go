package repository

import (
	"context"
	"errors"
	"time"

	"github.com/pravaah/backend/internal/domain/users"
	"github.com/pravaah/backend/pkg/middleware"
	"gorm.io/gorm"
)

type User struct {
	db *gorm.DB
}

func NewUser(db *gorm.DB) *User {
	return &User{db: db}
}

func (u User) CreateUser(ctx context.Context, user users.User) error {
	return u.db.WithContext(ctx).Create(&user).Error
}

func (u User) FindByEmail(ctx context.Context, email string) (*users.User, error) {
	return u.findOne(ctx, "email = ?", email)
}

func (u User) FindByUserName(ctx context.Context, userName string) (*users.User, error) {
	return u.findOne(ctx, "user_name = ?", userName)
}

func (u User) FindByEmailOrUserName(ctx context.Context, email, userName string) (*users.User, error) {
	return u.findOne(ctx, "email = ? OR user_name = ?", email, userName)
}

func (u User) FindByExtID(ctx context.Context, extID string) (*users.User, error) {
	return u.findOne(ctx, "ext_id = ?", extID)
}

func (u User) findOne(ctx context.Context, query string, args ...interface{}) (*users.User, error) {
	var user users.User
	err := u.db.WithContext(ctx).Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindAuthUser resolves a token subject for the auth middleware. Secret
// columns are never selected.
func (u User) FindAuthUser(ctx context.Context, extID string) (*middleware.AuthUser, error) {
	var user users.User
	err := u.db.WithContext(ctx).
		Select("ext_id", "user_name", "email", "full_name", "avatar", "cover_image").
		Where("ext_id = ?", extID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &middleware.AuthUser{
		ExtID:      user.ExtID,
		UserName:   user.UserName,
		Email:      user.Email,
		FullName:   user.FullName,
		Avatar:     user.Avatar,
		CoverImage: user.CoverImage,
	}, nil
}

// UpdateRefreshToken overwrites the single stored refresh token. An empty
// value clears the session entirely.
func (u User) UpdateRefreshToken(ctx context.Context, extID, token string) error {
	return u.db.WithContext(ctx).
		Model(&users.User{}).
		Where("ext_id = ?", extID).
		Update("refresh_token", token).Error
}

// UpdatePassword persists an already-hashed password. Callers hash before
// every write that touches this column.
func (u User) UpdatePassword(ctx context.Context, extID, passwordHash string) error {
	return u.db.WithContext(ctx).
		Model(&users.User{}).
		Where("ext_id = ?", extID).
		Update("password", passwordHash).Error
}

func (u User) UpdateAccount(ctx context.Context, extID string, fields map[string]interface{}) error {
	return u.db.WithContext(ctx).
		Model(&users.User{}).
		Where("ext_id = ?", extID).
		Updates(fields).Error
}

func (u User) DeleteResetsForUser(ctx context.Context, userExtID string) error {
	return u.db.WithContext(ctx).
		Where("user_ext_id = ?", userExtID).
		Delete(&users.PasswordReset{}).Error
}

func (u User) CreateReset(ctx context.Context, reset users.PasswordReset) error {
	return u.db.WithContext(ctx).Create(&reset).Error
}

func (u User) FindResetByHash(ctx context.Context, tokenHash string) (*users.PasswordReset, error) {
	var reset users.PasswordReset
	err := u.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reset, nil
}

func (u User) DeleteReset(ctx context.Context, id int) error {
	return u.db.WithContext(ctx).Delete(&users.PasswordReset{}, id).Error
}

func (u User) FindSubscription(ctx context.Context, subscriberExtID, channelExtID string) (*users.Subscription, error) {
	var sub users.Subscription
	err := u.db.WithContext(ctx).
		Where("subscriber_ext_id = ? AND channel_ext_id = ?", subscriberExtID, channelExtID).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (u User) CreateSubscription(ctx context.Context, sub users.Subscription) error {
	return u.db.WithContext(ctx).Create(&sub).Error
}

func (u User) DeleteSubscription(ctx context.Context, id int) error {
	return u.db.WithContext(ctx).Delete(&users.Subscription{}, id).Error
}

func (u User) CountSubscribers(ctx context.Context, channelExtID string) (int64, error) {
	var count int64
	err := u.db.WithContext(ctx).
		Model(&users.Subscription{}).
		Where("channel_ext_id = ?", channelExtID).
		Count(&count).Error
	return count, err
}

func (u User) CountSubscribedTo(ctx context.Context, subscriberExtID string) (int64, error) {
	var count int64
	err := u.db.WithContext(ctx).
		Model(&users.Subscription{}).
		Where("subscriber_ext_id = ?", subscriberExtID).
		Count(&count).Error
	return count, err
}

// AddWatchEntry appends to the user's watch history.
func (u User) AddWatchEntry(ctx context.Context, userExtID, videoExtID string) error {
	entry := users.WatchHistoryEntry{
		UserExtID:  userExtID,
		VideoExtID: videoExtID,
		WatchedAt:  time.Now(),
	}
	return u.db.WithContext(ctx).Create(&entry).Error
}

func (u User) ListWatchHistory(ctx context.Context, userExtID string, limit int) ([]users.WatchHistoryEntry, error) {
	var entries []users.WatchHistoryEntry
	err := u.db.WithContext(ctx).
		Where("user_ext_id = ?", userExtID).
		Order("watched_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

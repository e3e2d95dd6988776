package repository

import (
	"context"
	"errors"

	"github.com/pravaah/backend/internal/domain/likes"
	"github.com/pravaah/backend/internal/domain/users"
	"github.com/pravaah/backend/internal/domain/videos"
	"gorm.io/gorm"
)

type Like struct {
	db *gorm.DB
}

func NewLike(db *gorm.DB) *Like {
	return &Like{db: db}
}

func targetColumn(kind likes.TargetKind) string {
	switch kind {
	case likes.TargetComment:
		return "comment_ext_id"
	case likes.TargetTweet:
		return "tweet_ext_id"
	default:
		return "video_ext_id"
	}
}

func (l Like) Find(ctx context.Context, userExtID string, kind likes.TargetKind, targetExtID string) (*likes.Like, error) {
	var like likes.Like
	err := l.db.WithContext(ctx).
		Where("liked_by_ext_id = ? AND "+targetColumn(kind)+" = ?", userExtID, targetExtID).
		First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &like, nil
}

func (l Like) Create(ctx context.Context, like likes.Like) error {
	return l.db.WithContext(ctx).Create(&like).Error
}

func (l Like) Delete(ctx context.Context, id int) error {
	return l.db.WithContext(ctx).Delete(&likes.Like{}, id).Error
}

// ListLikedVideos returns the user's liked videos, newest like first, with
// the video and its owner resolved.
func (l Like) ListLikedVideos(ctx context.Context, userExtID string) ([]likes.LikedVideo, error) {
	var rows []likes.Like
	err := l.db.WithContext(ctx).
		Where("liked_by_ext_id = ? AND video_ext_id <> ''", userExtID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	videoIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		videoIDs = append(videoIDs, row.VideoExtID)
	}

	videoByID := map[string]videos.Video{}
	ownerIDs := make([]string, 0, len(videoIDs))
	if len(videoIDs) > 0 {
		var videoRows []videos.Video
		err := l.db.WithContext(ctx).
			Where("ext_id IN ?", videoIDs).
			Find(&videoRows).Error
		if err != nil {
			return nil, err
		}
		for _, video := range videoRows {
			videoByID[video.ExtID] = video
			ownerIDs = append(ownerIDs, video.OwnerExtID)
		}
	}

	ownerByID := map[string]likes.OwnerSummary{}
	if len(ownerIDs) > 0 {
		var userRows []users.User
		err := l.db.WithContext(ctx).
			Select("ext_id", "user_name", "full_name", "avatar").
			Where("ext_id IN ?", ownerIDs).
			Find(&userRows).Error
		if err != nil {
			return nil, err
		}
		for _, row := range userRows {
			ownerByID[row.ExtID] = likes.OwnerSummary{
				ExtID:    row.ExtID,
				UserName: row.UserName,
				FullName: row.FullName,
				Avatar:   row.Avatar,
			}
		}
	}

	result := make([]likes.LikedVideo, 0, len(rows))
	for _, row := range rows {
		video, ok := videoByID[row.VideoExtID]
		if !ok {
			continue
		}
		result = append(result, likes.LikedVideo{
			VideoExtID: video.ExtID,
			Title:      video.Title,
			Thumbnail:  video.Thumbnail,
			Owner:      ownerByID[video.OwnerExtID],
			LikedAt:    row.CreatedAt,
		})
	}
	return result, nil
}

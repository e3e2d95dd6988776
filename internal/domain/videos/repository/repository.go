package repository

import (
	"context"
	"errors"

	"github.com/pravaah/backend/internal/domain/users"
	"github.com/pravaah/backend/internal/domain/videos"
	"gorm.io/gorm"
)

type Video struct {
	db *gorm.DB
}

func NewVideo(db *gorm.DB) *Video {
	return &Video{db: db}
}

func (v Video) Create(ctx context.Context, video videos.Video) error {
	return v.db.WithContext(ctx).Create(&video).Error
}

func (v Video) FindByExtID(ctx context.Context, extID string) (*videos.Video, error) {
	var video videos.Video
	err := v.db.WithContext(ctx).Where("ext_id = ?", extID).First(&video).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &video, nil
}

func (v Video) Exists(ctx context.Context, extID string) (bool, error) {
	var count int64
	err := v.db.WithContext(ctx).
		Model(&videos.Video{}).
		Where("ext_id = ?", extID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByExtIDs fetches a batch of videos preserving the order of ids; ids
// without a matching row are skipped.
func (v Video) FindByExtIDs(ctx context.Context, extIDs []string) ([]videos.Video, error) {
	if len(extIDs) == 0 {
		return nil, nil
	}
	var rows []videos.Video
	err := v.db.WithContext(ctx).Where("ext_id IN ?", extIDs).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	byID := make(map[string]videos.Video, len(rows))
	for _, row := range rows {
		byID[row.ExtID] = row
	}
	ordered := make([]videos.Video, 0, len(rows))
	for _, id := range extIDs {
		if video, ok := byID[id]; ok {
			ordered = append(ordered, video)
		}
	}
	return ordered, nil
}

func (v Video) Update(ctx context.Context, extID, ownerExtID string, fields map[string]interface{}) (int64, error) {
	res := v.db.WithContext(ctx).
		Model(&videos.Video{}).
		Where("ext_id = ? AND owner_ext_id = ?", extID, ownerExtID).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (v Video) Delete(ctx context.Context, extID, ownerExtID string) (int64, error) {
	res := v.db.WithContext(ctx).
		Where("ext_id = ? AND owner_ext_id = ?", extID, ownerExtID).
		Delete(&videos.Video{})
	return res.RowsAffected, res.Error
}

func (v Video) List(ctx context.Context, q videos.ListQuery) ([]videos.Video, int64, error) {
	query := v.db.WithContext(ctx).Model(&videos.Video{}).Where("is_published = ?", true)

	if q.Query != "" {
		pattern := "%" + q.Query + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if q.OwnerExtID != "" {
		query = query.Where("owner_ext_id = ?", q.OwnerExtID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	switch q.SortBy {
	case "views", "duration", "title", "created_at":
		sortBy = q.SortBy
	}
	order := sortBy + " DESC"
	if q.SortOrder == "asc" {
		order = sortBy + " ASC"
	}

	var list []videos.Video
	err := query.
		Order(order).
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// AttachOwners resolves owner summaries for a batch of videos.
func (v Video) AttachOwners(ctx context.Context, list []videos.Video) ([]videos.VideoDetail, error) {
	extIDs := make([]string, 0, len(list))
	for _, video := range list {
		extIDs = append(extIDs, video.OwnerExtID)
	}

	owners := map[string]videos.OwnerSummary{}
	if len(extIDs) > 0 {
		var rows []users.User
		err := v.db.WithContext(ctx).
			Select("ext_id", "user_name", "full_name", "avatar").
			Where("ext_id IN ?", extIDs).
			Find(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			owners[row.ExtID] = videos.OwnerSummary{
				ExtID:    row.ExtID,
				UserName: row.UserName,
				FullName: row.FullName,
				Avatar:   row.Avatar,
			}
		}
	}

	details := make([]videos.VideoDetail, 0, len(list))
	for _, video := range list {
		details = append(details, videos.VideoDetail{
			Video: video,
			Owner: owners[video.OwnerExtID],
		})
	}
	return details, nil
}

// ChannelStats aggregates videos, views, likes and subscribers for an owner.
func (v Video) ChannelStats(ctx context.Context, ownerExtID string) (*videos.ChannelStats, error) {
	var stats videos.ChannelStats

	err := v.db.WithContext(ctx).
		Model(&videos.Video{}).
		Select("COUNT(*) AS total_videos, COALESCE(SUM(views), 0) AS total_views").
		Where("owner_ext_id = ?", ownerExtID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	err = v.db.WithContext(ctx).
		Table("likes").
		Joins("JOIN videos ON videos.ext_id = likes.video_ext_id").
		Where("videos.owner_ext_id = ?", ownerExtID).
		Count(&stats.TotalLikes).Error
	if err != nil {
		return nil, err
	}

	err = v.db.WithContext(ctx).
		Table("subscriptions").
		Where("channel_ext_id = ?", ownerExtID).
		Count(&stats.TotalSubscribers).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

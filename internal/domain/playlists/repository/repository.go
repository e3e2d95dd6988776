package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pravaah/backend/internal/domain/playlists"
)

type Playlist struct {
	db *gorm.DB
}

func NewPlaylist(db *gorm.DB) *Playlist {
	return &Playlist{db: db}
}

func (r *Playlist) Create(ctx context.Context, p *playlists.Playlist) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *Playlist) FindByExtID(ctx context.Context, extID string) (*playlists.Playlist, error) {
	var p playlists.Playlist
	err := r.db.WithContext(ctx).Where("ext_id = ?", extID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *Playlist) ListForOwner(ctx context.Context, ownerExtID string) ([]playlists.Playlist, error) {
	var list []playlists.Playlist
	err := r.db.WithContext(ctx).
		Where("owner_ext_id = ?", ownerExtID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Update applies the given fields to a playlist owned by ownerExtID and
// reports how many rows matched.
func (r *Playlist) Update(ctx context.Context, extID, ownerExtID string, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&playlists.Playlist{}).
		Where("ext_id = ? AND owner_ext_id = ?", extID, ownerExtID).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *Playlist) Delete(ctx context.Context, extID, ownerExtID string) (int64, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("ext_id = ? AND owner_ext_id = ?", extID, ownerExtID).
			Delete(&playlists.Playlist{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("playlist_ext_id = ?", extID).
			Delete(&playlists.PlaylistVideo{}).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return 1, nil
}

// AddVideo inserts a membership row; re-adding an existing video is a no-op.
func (r *Playlist) AddVideo(ctx context.Context, playlistExtID, videoExtID string) error {
	entry := playlists.PlaylistVideo{
		PlaylistExtID: playlistExtID,
		VideoExtID:    videoExtID,
		AddedAt:       time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entry).Error
}

func (r *Playlist) RemoveVideo(ctx context.Context, playlistExtID, videoExtID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("playlist_ext_id = ? AND video_ext_id = ?", playlistExtID, videoExtID).
		Delete(&playlists.PlaylistVideo{})
	return res.RowsAffected, res.Error
}

func (r *Playlist) ListVideoExtIDs(ctx context.Context, playlistExtID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&playlists.PlaylistVideo{}).
		Where("playlist_ext_id = ?", playlistExtID).
		Order("added_at ASC, id ASC").
		Pluck("video_ext_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

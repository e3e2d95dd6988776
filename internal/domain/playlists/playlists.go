package playlists

import (
	"time"

	"github.com/pravaah/backend/internal/domain/videos"
)

type Playlist struct {
	ID          int       `json:"id" gorm:"primaryKey;autoIncrement"`
	ExtID       string    `json:"ext_id" gorm:"ext_id;unique"`
	OwnerExtID  string    `json:"owner_ext_id" gorm:"column:owner_ext_id;not null;index"`
	Name        string    `json:"name" gorm:"name;size:100"`
	Description string    `json:"description" gorm:"description;size:500"`
	CreatedAt   time.Time `json:"created_at" gorm:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"updated_at"`
}

// PlaylistVideo links a video into a playlist; the unique index gives
// membership set semantics.
type PlaylistVideo struct {
	ID            int       `json:"id" gorm:"primaryKey;autoIncrement"`
	PlaylistExtID string    `json:"playlist_ext_id" gorm:"column:playlist_ext_id;not null;uniqueIndex:idx_playlist_video"`
	VideoExtID    string    `json:"video_ext_id" gorm:"column:video_ext_id;not null;uniqueIndex:idx_playlist_video"`
	AddedAt       time.Time `json:"added_at" gorm:"added_at"`
}

type CreateRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"required,min=5,max=500"`
}

type UpdateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type PlaylistDetail struct {
	Playlist
	Videos []videos.VideoDetail `json:"videos"`
}

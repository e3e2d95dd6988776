package videos

import "time"

type Video struct {
	ID          int       `json:"id" gorm:"primaryKey;autoIncrement"`
	ExtID       string    `json:"ext_id" gorm:"ext_id;unique"`
	OwnerExtID  string    `json:"owner_ext_id" gorm:"column:owner_ext_id;not null;index"`
	Title       string    `json:"title" gorm:"title;size:100"`
	Description string    `json:"description" gorm:"description"`
	VideoFile   string    `json:"video_file" gorm:"video_file"`
	Thumbnail   string    `json:"thumbnail" gorm:"thumbnail"`
	Duration    float64   `json:"duration" gorm:"duration"`
	Views       int64     `json:"views" gorm:"views;default:0"`
	IsPublished bool      `json:"is_published" gorm:"is_published;default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"updated_at"`
}

// OwnerSummary is the public slice of a video's owner shown in listings.
type OwnerSummary struct {
	ExtID    string `json:"ext_id"`
	UserName string `json:"user_name"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
}

type VideoDetail struct {
	Video
	Owner OwnerSummary `json:"owner"`
}

type PublishRequest struct {
	Title       string `form:"title" validate:"required,min=3,max=100"`
	Description string `form:"description" validate:"required,min=10"`
}

type UpdateRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

type ListQuery struct {
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
	Query      string `query:"query"`
	OwnerExtID string `query:"userId"`
	SortBy     string `query:"sortBy"`
	SortOrder  string `query:"sortType"`
}

type ListResponse struct {
	Videos []VideoDetail `json:"videos"`
	Page   int           `json:"page"`
	Limit  int           `json:"limit"`
	Total  int64         `json:"total"`
}

// ChannelStats aggregates a publisher's totals for the dashboard.
type ChannelStats struct {
	TotalVideos      int64 `json:"total_videos"`
	TotalViews       int64 `json:"total_views"`
	TotalLikes       int64 `json:"total_likes"`
	TotalSubscribers int64 `json:"total_subscribers"`
}

package likes

import "time"

// TargetKind names the single entity a like applies to.
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
)

// Like marks exactly one of video/comment/tweet as liked by a user. Liking
// the same target again removes the like.
type Like struct {
	ID           int       `json:"id" gorm:"primaryKey;autoIncrement"`
	LikedByExtID string    `json:"liked_by_ext_id" gorm:"column:liked_by_ext_id;not null;index"`
	VideoExtID   string    `json:"video_ext_id,omitempty" gorm:"column:video_ext_id;index"`
	CommentExtID string    `json:"comment_ext_id,omitempty" gorm:"column:comment_ext_id;index"`
	TweetExtID   string    `json:"tweet_ext_id,omitempty" gorm:"column:tweet_ext_id;index"`
	CreatedAt    time.Time `json:"created_at" gorm:"created_at"`
}

type OwnerSummary struct {
	ExtID    string `json:"ext_id"`
	UserName string `json:"user_name"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
}

// LikedVideo is one row of a user's liked-videos listing.
type LikedVideo struct {
	VideoExtID string       `json:"video_ext_id"`
	Title      string       `json:"title"`
	Thumbnail  string       `json:"thumbnail"`
	Owner      OwnerSummary `json:"owner"`
	LikedAt    time.Time    `json:"liked_at"`
}

type ToggleResponse struct {
	Liked bool `json:"liked"`
}

package comments

import "time"

type Comment struct {
	ID         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	ExtID      string    `json:"ext_id" gorm:"ext_id;unique"`
	VideoExtID string    `json:"video_ext_id" gorm:"column:video_ext_id;not null;index"`
	OwnerExtID string    `json:"owner_ext_id" gorm:"column:owner_ext_id;not null;index"`
	Content    string    `json:"content" gorm:"content;size:280"`
	CreatedAt  time.Time `json:"created_at" gorm:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"updated_at"`
}

type AddRequest struct {
	Content string `json:"content" validate:"required,min=1,max=280"`
}

type UpdateRequest struct {
	Content string `json:"content" validate:"required,min=1,max=280"`
}

type OwnerSummary struct {
	ExtID    string `json:"ext_id"`
	UserName string `json:"user_name"`
	Avatar   string `json:"avatar"`
}

type CommentDetail struct {
	Comment
	Owner OwnerSummary `json:"owner"`
}

type ListResponse struct {
	Comments []CommentDetail `json:"comments"`
	Page     int             `json:"page"`
	Limit    int             `json:"limit"`
}

package tweets

import "time"

type Tweet struct {
	ID         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	ExtID      string    `json:"ext_id" gorm:"ext_id;unique"`
	OwnerExtID string    `json:"owner_ext_id" gorm:"column:owner_ext_id;not null;index"`
	Content    string    `json:"content" gorm:"content;size:280"`
	CreatedAt  time.Time `json:"created_at" gorm:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"updated_at"`
}

type CreateRequest struct {
	Content string `json:"content" validate:"required,min=1,max=280"`
}

type UpdateRequest struct {
	Content string `json:"content" validate:"required,min=1,max=280"`
}

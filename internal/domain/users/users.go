package users

import "time"

// User is the credential-bearing identity. Password and RefreshToken are
// secret fields: excluded from JSON and from every read that feeds a
// response.
type User struct {
	ID           int       `json:"id" gorm:"primaryKey;autoIncrement"`
	ExtID        string    `json:"ext_id" gorm:"ext_id;unique"`
	UserName     string    `json:"user_name" gorm:"user_name;unique;size:20"`
	Email        string    `json:"email" gorm:"email;unique"`
	FullName     string    `json:"full_name" gorm:"full_name"`
	Password     string    `json:"-" gorm:"password"`
	RefreshToken string    `json:"-" gorm:"refresh_token"`
	Avatar       string    `json:"avatar" gorm:"avatar"`
	CoverImage   string    `json:"cover_image" gorm:"cover_image"`
	CreatedAt    time.Time `json:"created_at" gorm:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"updated_at"`
}

// PasswordReset is a one-time password-recovery ticket. Only the SHA-256
// hash of the token is stored; at most one live row exists per user.
type PasswordReset struct {
	ID        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserExtID string    `json:"user_ext_id" gorm:"column:user_ext_id;not null;index"`
	TokenHash string    `json:"token_hash" gorm:"token_hash;unique"`
	ExpiresAt time.Time `json:"expires_at" gorm:"expires_at"`
	CreatedAt time.Time `json:"created_at" gorm:"created_at"`
}

// Subscription links a subscriber to a channel (both users).
type Subscription struct {
	ID              int       `json:"id" gorm:"primaryKey;autoIncrement"`
	SubscriberExtID string    `json:"subscriber_ext_id" gorm:"column:subscriber_ext_id;not null;uniqueIndex:idx_subscriber_channel"`
	ChannelExtID    string    `json:"channel_ext_id" gorm:"column:channel_ext_id;not null;uniqueIndex:idx_subscriber_channel"`
	CreatedAt       time.Time `json:"created_at" gorm:"created_at"`
}

// WatchHistoryEntry records that a user watched a video.
type WatchHistoryEntry struct {
	ID         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserExtID  string    `json:"user_ext_id" gorm:"column:user_ext_id;not null;index"`
	VideoExtID string    `json:"video_ext_id" gorm:"column:video_ext_id;not null"`
	WatchedAt  time.Time `json:"watched_at" gorm:"watched_at"`
}

type RegisterRequest struct {
	FullName string `form:"fullName" validate:"required,min=3"`
	Email    string `form:"email" validate:"required,email"`
	UserName string `form:"userName" validate:"required,min=3,max=20"`
	Password string `form:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword" validate:"required"`
	NewPassword        string `json:"newPassword" validate:"required"`
	ConfirmNewPassword string `json:"confirmNewPassword" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type UpdateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type SubscribeRequest struct {
	ChannelExtID string `json:"channelId" validate:"required"`
}

// Profile is the identity without secret fields.
type Profile struct {
	ExtID      string `json:"ext_id"`
	UserName   string `json:"user_name"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Avatar     string `json:"avatar"`
	CoverImage string `json:"cover_image"`
}

// ChannelProfile is the public channel view returned by getProfile.
type ChannelProfile struct {
	Profile
	SubscriberCount   int64 `json:"subscriber_count"`
	SubscribedToCount int64 `json:"subscribed_to_count"`
	IsSubscribed      bool  `json:"is_subscribed"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LoginResponse struct {
	TokenPair
	User Profile `json:"user"`
}

func (u *User) ToProfile() Profile {
	return Profile{
		ExtID:      u.ExtID,
		UserName:   u.UserName,
		Email:      u.Email,
		FullName:   u.FullName,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
	}
}

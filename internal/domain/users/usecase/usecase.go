package usecase

import (
	"context"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/pravaah/backend/internal/domain/users"
	"github.com/pravaah/backend/pkg/jwt"
	"github.com/pravaah/backend/pkg/response"
	"github.com/segmentio/ksuid"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the work factor the platform has always used for
// stored passwords.
const bcryptCost = 10

type UserRepository interface {
	CreateUser(ctx context.Context, user users.User) error
	FindByEmail(ctx context.Context, email string) (*users.User, error)
	FindByUserName(ctx context.Context, userName string) (*users.User, error)
	FindByEmailOrUserName(ctx context.Context, email, userName string) (*users.User, error)
	FindByExtID(ctx context.Context, extID string) (*users.User, error)
	UpdateRefreshToken(ctx context.Context, extID, token string) error
	UpdatePassword(ctx context.Context, extID, passwordHash string) error
	UpdateAccount(ctx context.Context, extID string, fields map[string]interface{}) error
	DeleteResetsForUser(ctx context.Context, userExtID string) error
	CreateReset(ctx context.Context, reset users.PasswordReset) error
	FindResetByHash(ctx context.Context, tokenHash string) (*users.PasswordReset, error)
	DeleteReset(ctx context.Context, id int) error
	FindSubscription(ctx context.Context, subscriberExtID, channelExtID string) (*users.Subscription, error)
	CreateSubscription(ctx context.Context, sub users.Subscription) error
	DeleteSubscription(ctx context.Context, id int) error
	CountSubscribers(ctx context.Context, channelExtID string) (int64, error)
	CountSubscribedTo(ctx context.Context, subscriberExtID string) (int64, error)
	AddWatchEntry(ctx context.Context, userExtID, videoExtID string) error
	ListWatchHistory(ctx context.Context, userExtID string, limit int) ([]users.WatchHistoryEntry, error)
}

// FileStore uploads user images and returns their public URL.
type FileStore interface {
	UploadImage(ctx context.Context, fh *multipart.FileHeader, prefix string) (string, error)
}

// Mailer dispatches the password reset mail.
type Mailer interface {
	Send(to, subject, text, html string) error
}

type Usecase struct {
	repo         UserRepository
	tokens       *jwt.TokenService
	files        FileStore
	mailer       Mailer
	resetURLBase string
}

func NewUsecase(repo UserRepository, tokens *jwt.TokenService, files FileStore, mailer Mailer, resetURLBase string) *Usecase {
	return &Usecase{
		repo:         repo,
		tokens:       tokens,
		files:        files,
		mailer:       mailer,
		resetURLBase: resetURLBase,
	}
}

// HashPassword is the single hashing entry point, called explicitly at every
// write site that changes the password field and nowhere else.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

func (u Usecase) Register(ctx context.Context, payload users.RegisterRequest, avatar, cover *multipart.FileHeader) (*users.Profile, error) {
	payload.FullName = strings.TrimSpace(payload.FullName)
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	payload.UserName = strings.ToLower(strings.TrimSpace(payload.UserName))
	payload.Password = strings.TrimSpace(payload.Password)

	if payload.FullName == "" || payload.Email == "" || payload.UserName == "" || payload.Password == "" {
		return nil, response.ValidationError("all fields are required")
	}

	existing, err := u.repo.FindByEmail(ctx, payload.Email)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if existing != nil {
		return nil, response.Conflict("email_already_registered")
	}

	existing, err = u.repo.FindByUserName(ctx, payload.UserName)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if existing != nil {
		return nil, response.Conflict("username_already_taken")
	}

	if avatar == nil {
		return nil, response.ValidationError("avatar image is required")
	}

	avatarURL, err := u.files.UploadImage(ctx, avatar, "avatars")
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	var coverURL string
	if cover != nil {
		coverURL, err = u.files.UploadImage(ctx, cover, "covers")
		if err != nil {
			return nil, response.InternalServerError(err)
		}
	}

	passwordHash, err := HashPassword(payload.Password)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	user := users.User{
		ExtID:      "user_" + ksuid.New().String(),
		UserName:   payload.UserName,
		Email:      payload.Email,
		FullName:   payload.FullName,
		Password:   passwordHash,
		Avatar:     avatarURL,
		CoverImage: coverURL,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := u.repo.CreateUser(ctx, user); err != nil {
		return nil, response.InternalServerError(err)
	}

	profile := user.ToProfile()
	return &profile, nil
}

func (u Usecase) Login(ctx context.Context, payload users.LoginRequest) (*users.LoginResponse, error) {
	userName := strings.ToLower(strings.TrimSpace(payload.UserName))
	email := strings.ToLower(strings.TrimSpace(payload.Email))
	password := strings.TrimSpace(payload.Password)

	if userName == "" && email == "" {
		return nil, response.ValidationError("username or email is required")
	}
	if password == "" {
		return nil, response.ValidationError("password is required")
	}

	user, err := u.repo.FindByEmailOrUserName(ctx, email, userName)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	// Absent user and wrong password fail identically: no account
	// enumeration through the login path.
	if user == nil || !CheckPassword(password, user.Password) {
		return nil, response.Unauthorized("invalid_credentials")
	}

	pair, err := u.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &users.LoginResponse{
		TokenPair: *pair,
		User:      user.ToProfile(),
	}, nil
}

// Refresh rotates the session: the presented token must verify and match the
// single stored value, and a brand-new pair replaces it.
func (u Usecase) Refresh(ctx context.Context, refreshToken string) (*users.LoginResponse, error) {
	if refreshToken == "" {
		return nil, response.Unauthorized("refresh_token_required")
	}

	claims, err := u.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, response.Unauthorized("invalid_or_expired_refresh_token")
	}

	user, err := u.repo.FindByExtID(ctx, claims.UserExtID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if user == nil || user.RefreshToken == "" || user.RefreshToken != refreshToken {
		// Signature alone is not enough: a rotated-out or cleared token
		// is treated as a reuse attempt.
		return nil, response.Unauthorized("invalid_or_expired_refresh_token")
	}

	pair, err := u.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &users.LoginResponse{
		TokenPair: *pair,
		User:      user.ToProfile(),
	}, nil
}

func (u Usecase) Logout(ctx context.Context, extID string) error {
	if extID == "" {
		return response.Unauthorized("unauthorized")
	}
	if err := u.repo.UpdateRefreshToken(ctx, extID, ""); err != nil {
		return response.InternalServerError(err)
	}
	return nil
}

func (u Usecase) ChangePassword(ctx context.Context, extID string, payload users.ChangePasswordRequest) error {
	current := strings.TrimSpace(payload.CurrentPassword)
	newPassword := strings.TrimSpace(payload.NewPassword)
	confirm := strings.TrimSpace(payload.ConfirmNewPassword)

	if current == "" || newPassword == "" || confirm == "" {
		return response.ValidationError("all fields are required")
	}
	if newPassword != confirm {
		return response.ValidationError("password confirmation does not match")
	}
	if len(newPassword) < 8 || len(newPassword) > 16 {
		return response.ValidationError("password must be between 8 and 16 characters")
	}
	if newPassword == current {
		return response.ValidationError("new password must differ from current password")
	}

	user, err := u.repo.FindByExtID(ctx, extID)
	if err != nil {
		return response.InternalServerError(err)
	}
	if user == nil {
		return response.Unauthorized("unauthorized")
	}

	if !CheckPassword(current, user.Password) {
		return response.Unauthorized("current_password_incorrect")
	}

	passwordHash, err := HashPassword(newPassword)
	if err != nil {
		return response.InternalServerError(err)
	}
	if err := u.repo.UpdatePassword(ctx, extID, passwordHash); err != nil {
		return response.InternalServerError(err)
	}
	return nil
}

func (u Usecase) issueTokenPair(ctx context.Context, user *users.User) (*users.TokenPair, error) {
	accessToken, err := u.tokens.GenerateAccessToken(user.ExtID, user.Email, user.UserName, user.FullName)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	refreshToken, err := u.tokens.GenerateRefreshToken(user.ExtID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	if err := u.repo.UpdateRefreshToken(ctx, user.ExtID, refreshToken); err != nil {
		return nil, response.InternalServerError(err)
	}

	return &users.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GetProfileByExtID returns the caller's own identity without secret fields.
func (u Usecase) GetProfileByExtID(ctx context.Context, extID string) (*users.Profile, error) {
	user, err := u.repo.FindByExtID(ctx, extID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if user == nil {
		return nil, response.NewError(http.StatusNotFound, "user_not_found", nil)
	}
	profile := user.ToProfile()
	return &profile, nil
}

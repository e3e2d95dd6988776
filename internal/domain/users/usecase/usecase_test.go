package usecase

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pravaah/backend/internal/domain/users"
	"github.com/pravaah/backend/internal/domain/users/repository"
	"github.com/pravaah/backend/pkg/jwt"
	"github.com/pravaah/backend/pkg/response"
)

type fakeFileStore struct {
	uploads int
	err     error
}

func (f *fakeFileStore) UploadImage(_ context.Context, fh *multipart.FileHeader, prefix string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads++
	return "http://storage.local/" + prefix + "/" + fh.Filename, nil
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to      string
	subject string
	text    string
}

func (f *fakeMailer) Send(to, subject, text, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, text: text})
	return nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&users.User{},
		&users.PasswordReset{},
		&users.Subscription{},
		&users.WatchHistoryEntry{},
	))
	return db
}

type testEnv struct {
	db      *gorm.DB
	repo    *repository.User
	tokens  *jwt.TokenService
	files   *fakeFileStore
	mailer  *fakeMailer
	usecase *Usecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)
	repo := repository.NewUser(db)
	tokens := jwt.NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 168*time.Hour)
	files := &fakeFileStore{}
	mailer := &fakeMailer{}
	uc := NewUsecase(repo, tokens, files, mailer, "http://front.local/reset-password")
	return &testEnv{db: db, repo: repo, tokens: tokens, files: files, mailer: mailer, usecase: uc}
}

func registerRequest() users.RegisterRequest {
	return users.RegisterRequest{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		UserName: "jane",
		Password: "sw0rdfish",
	}
}

func avatarFile() *multipart.FileHeader {
	return &multipart.FileHeader{Filename: "avatar.png"}
}

func (e *testEnv) register(t *testing.T) *users.Profile {
	t.Helper()
	profile, err := e.usecase.Register(context.Background(), registerRequest(), avatarFile(), nil)
	require.NoError(t, err)
	return profile
}

func assertAPIError(t *testing.T, err error, code int, message string) {
	t.Helper()
	var apiErr *response.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, code, apiErr.Code)
	assert.Equal(t, message, apiErr.Message)
}

func TestRegister(t *testing.T) {
	t.Run("stores a bcrypt hash, never the plaintext", func(t *testing.T) {
		env := newTestEnv(t)
		profile := env.register(t)

		var row users.User
		require.NoError(t, env.db.Where("ext_id = ?", profile.ExtID).First(&row).Error)

		assert.NotEqual(t, "sw0rdfish", row.Password)
		assert.True(t, CheckPassword("sw0rdfish", row.Password))
		assert.False(t, CheckPassword("wrong", row.Password))
	})

	t.Run("normalizes email and username", func(t *testing.T) {
		env := newTestEnv(t)
		req := registerRequest()
		req.Email = "  Jane@Example.COM "
		req.UserName = " JANE "

		profile, err := env.usecase.Register(context.Background(), req, avatarFile(), nil)
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", profile.Email)
		assert.Equal(t, "jane", profile.UserName)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		env := newTestEnv(t)
		env.register(t)

		req := registerRequest()
		req.UserName = "someoneelse"
		_, err := env.usecase.Register(context.Background(), req, avatarFile(), nil)
		assertAPIError(t, err, 409, "email_already_registered")
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		env := newTestEnv(t)
		env.register(t)

		req := registerRequest()
		req.Email = "other@example.com"
		_, err := env.usecase.Register(context.Background(), req, avatarFile(), nil)
		assertAPIError(t, err, 409, "username_already_taken")
	})

	t.Run("avatar is mandatory", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.usecase.Register(context.Background(), registerRequest(), nil, nil)
		assertAPIError(t, err, 400, "avatar image is required")
	})

	t.Run("upload failure aborts the registration", func(t *testing.T) {
		env := newTestEnv(t)
		env.files.err = errors.New("bucket unavailable")

		_, err := env.usecase.Register(context.Background(), registerRequest(), avatarFile(), nil)
		require.Error(t, err)

		var count int64
		env.db.Model(&users.User{}).Count(&count)
		assert.Zero(t, count)
	})
}

func TestLogin(t *testing.T) {
	t.Run("issues a distinct token pair and persists the refresh token", func(t *testing.T) {
		env := newTestEnv(t)
		profile := env.register(t)

		resp, err := env.usecase.Login(context.Background(), users.LoginRequest{
			UserName: "jane",
			Password: "sw0rdfish",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.NotEqual(t, resp.AccessToken, resp.RefreshToken)
		assert.Equal(t, profile.ExtID, resp.User.ExtID)

		var row users.User
		require.NoError(t, env.db.Where("ext_id = ?", profile.ExtID).First(&row).Error)
		assert.Equal(t, resp.RefreshToken, row.RefreshToken)
	})

	t.Run("accepts email as identifier", func(t *testing.T) {
		env := newTestEnv(t)
		env.register(t)

		_, err := env.usecase.Login(context.Background(), users.LoginRequest{
			Email:    "jane@example.com",
			Password: "sw0rdfish",
		})
		assert.NoError(t, err)
	})

	t.Run("unknown account and wrong password fail identically", func(t *testing.T) {
		env := newTestEnv(t)
		env.register(t)

		_, errUnknown := env.usecase.Login(context.Background(), users.LoginRequest{
			UserName: "nobody",
			Password: "sw0rdfish",
		})
		_, errWrongPass := env.usecase.Login(context.Background(), users.LoginRequest{
			UserName: "jane",
			Password: "totally-wrong",
		})

		assertAPIError(t, errUnknown, 401, "invalid_credentials")
		assertAPIError(t, errWrongPass, 401, "invalid_credentials")
	})

	t.Run("missing identifier is a validation error", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.usecase.Login(context.Background(), users.LoginRequest{Password: "sw0rdfish"})
		assertAPIError(t, err, 400, "username or email is required")
	})
}

func TestRefresh(t *testing.T) {
	t.Run("rotates the pair and kills the previous refresh token", func(t *testing.T) {
		env := newTestEnv(t)
		env.register(t)

		login, err := env.usecase.Login(context.Background(), users.LoginRequest{
			UserName: "jane", Password: "sw0rdfish",
		})
		require.NoError(t, err)

		rotated, err := env.usecase.Refresh(context.Background(), login.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, rotated.RefreshToken)

		// The superseded token no longer matches the stored value.
		_, err = env.usecase.Refresh(context.Background(), login.RefreshToken)
		assertAPIError(t, err, 401, "invalid_or_expired_refresh_token")

		// The fresh one still works.
		_, err = env.usecase.Refresh(context.Background(), rotated.RefreshToken)
		assert.NoError(t, err)
	})

	t.Run("empty token is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.usecase.Refresh(context.Background(), "")
		assertAPIError(t, err, 401, "refresh_token_required")
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.usecase.Refresh(context.Background(), "not-a-jwt")
		assertAPIError(t, err, 401, "invalid_or_expired_refresh_token")
	})

	t.Run("well-signed token without a stored counterpart is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		profile := env.register(t)

		// Never logged in, so nothing is stored on the row.
		token, err := env.tokens.GenerateRefreshToken(profile.ExtID)
		require.NoError(t, err)

		_, err = env.usecase.Refresh(context.Background(), token)
		assertAPIError(t, err, 401, "invalid_or_expired_refresh_token")
	})
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	profile := env.register(t)

	login, err := env.usecase.Login(context.Background(), users.LoginRequest{
		UserName: "jane", Password: "sw0rdfish",
	})
	require.NoError(t, err)

	require.NoError(t, env.usecase.Logout(context.Background(), profile.ExtID))

	var row users.User
	require.NoError(t, env.db.Where("ext_id = ?", profile.ExtID).First(&row).Error)
	assert.Empty(t, row.RefreshToken)

	// The old refresh token is dead after logout.
	_, err = env.usecase.Refresh(context.Background(), login.RefreshToken)
	assertAPIError(t, err, 401, "invalid_or_expired_refresh_token")
}

func TestChangePassword(t *testing.T) {
	newTestUser := func(t *testing.T) (*testEnv, string) {
		env := newTestEnv(t)
		profile := env.register(t)
		return env, profile.ExtID
	}

	tests := []struct {
		name    string
		payload users.ChangePasswordRequest
		code    int
		message string
	}{
		{
			name:    "missing fields",
			payload: users.ChangePasswordRequest{CurrentPassword: "sw0rdfish"},
			code:    400, message: "all fields are required",
		},
		{
			name: "confirmation mismatch",
			payload: users.ChangePasswordRequest{
				CurrentPassword: "sw0rdfish", NewPassword: "newpass123", ConfirmNewPassword: "different1",
			},
			code: 400, message: "password confirmation does not match",
		},
		{
			name: "too short",
			payload: users.ChangePasswordRequest{
				CurrentPassword: "sw0rdfish", NewPassword: "short", ConfirmNewPassword: "short",
			},
			code: 400, message: "password must be between 8 and 16 characters",
		},
		{
			name: "too long",
			payload: users.ChangePasswordRequest{
				CurrentPassword:    "sw0rdfish",
				NewPassword:        "thispasswordiswaytoolong",
				ConfirmNewPassword: "thispasswordiswaytoolong",
			},
			code: 400, message: "password must be between 8 and 16 characters",
		},
		{
			name: "same as current",
			payload: users.ChangePasswordRequest{
				CurrentPassword: "sw0rdfish", NewPassword: "sw0rdfish", ConfirmNewPassword: "sw0rdfish",
			},
			code: 400, message: "new password must differ from current password",
		},
		{
			name: "wrong current password",
			payload: users.ChangePasswordRequest{
				CurrentPassword: "not-the-one", NewPassword: "newpass123", ConfirmNewPassword: "newpass123",
			},
			code: 401, message: "current_password_incorrect",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, extID := newTestUser(t)
			err := env.usecase.ChangePassword(context.Background(), extID, tt.payload)
			assertAPIError(t, err, tt.code, tt.message)
		})
	}

	t.Run("success rehashes and old password stops working", func(t *testing.T) {
		env, extID := newTestUser(t)

		err := env.usecase.ChangePassword(context.Background(), extID, users.ChangePasswordRequest{
			CurrentPassword:    "sw0rdfish",
			NewPassword:        "newpass123",
			ConfirmNewPassword: "newpass123",
		})
		require.NoError(t, err)

		_, err = env.usecase.Login(context.Background(), users.LoginRequest{
			UserName: "jane", Password: "sw0rdfish",
		})
		assertAPIError(t, err, 401, "invalid_credentials")

		_, err = env.usecase.Login(context.Background(), users.LoginRequest{
			UserName: "jane", Password: "newpass123",
		})
		assert.NoError(t, err)
	})
}

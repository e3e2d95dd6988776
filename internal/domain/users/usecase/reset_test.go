package usecase

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pravaah/backend/internal/domain/users"
)

// tokenFromMail extracts the raw reset token out of the mailed link.
func tokenFromMail(t *testing.T, mail sentMail) string {
	t.Helper()
	idx := strings.Index(mail.text, "http")
	require.GreaterOrEqual(t, idx, 0, "mail should carry a reset link")
	link := strings.Fields(mail.text[idx:])[0]
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	token := parsed.Query().Get("token")
	require.NotEmpty(t, token)
	return token
}

func TestRequestReset(t *testing.T) {
	t.Run("mails a link and stores only the hash", func(t *testing.T) {
		env := newTestEnv(t)
		env.register(t)

		require.NoError(t, env.usecase.RequestReset(context.Background(), "jane@example.com"))
		require.Len(t, env.mailer.sent, 1)
		assert.Equal(t, "jane@example.com", env.mailer.sent[0].to)

		token := tokenFromMail(t, env.mailer.sent[0])

		var reset users.PasswordReset
		require.NoError(t, env.db.First(&reset).Error)
		assert.NotEqual(t, token, reset.TokenHash)
		assert.True(t, reset.ExpiresAt.After(time.Now()))
	})

	t.Run("unknown address is silently accepted", func(t *testing.T) {
		env := newTestEnv(t)
		env.register(t)

		err := env.usecase.RequestReset(context.Background(), "nobody@example.com")
		assert.NoError(t, err)
		assert.Empty(t, env.mailer.sent)

		var count int64
		env.db.Model(&users.PasswordReset{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("a new request replaces the previous token", func(t *testing.T) {
		env := newTestEnv(t)
		env.register(t)

		require.NoError(t, env.usecase.RequestReset(context.Background(), "jane@example.com"))
		require.NoError(t, env.usecase.RequestReset(context.Background(), "jane@example.com"))
		require.Len(t, env.mailer.sent, 2)

		var count int64
		env.db.Model(&users.PasswordReset{}).Count(&count)
		assert.EqualValues(t, 1, count)

		firstToken := tokenFromMail(t, env.mailer.sent[0])
		err := env.usecase.ConsumeReset(context.Background(), users.ResetPasswordRequest{
			Token: firstToken, NewPassword: "newpass123", ConfirmPassword: "newpass123",
		})
		assertAPIError(t, err, 401, "invalid_reset_token")
	})
}

func TestConsumeReset(t *testing.T) {
	issueToken := func(t *testing.T, env *testEnv) string {
		t.Helper()
		require.NoError(t, env.usecase.RequestReset(context.Background(), "jane@example.com"))
		return tokenFromMail(t, env.mailer.sent[len(env.mailer.sent)-1])
	}

	t.Run("sets the new password exactly once", func(t *testing.T) {
		env := newTestEnv(t)
		env.register(t)
		token := issueToken(t, env)

		err := env.usecase.ConsumeReset(context.Background(), users.ResetPasswordRequest{
			Token: token, NewPassword: "newpass123", ConfirmPassword: "newpass123",
		})
		require.NoError(t, err)

		_, err = env.usecase.Login(context.Background(), users.LoginRequest{
			UserName: "jane", Password: "newpass123",
		})
		assert.NoError(t, err)

		// Second use of the same token fails: the row is gone.
		err = env.usecase.ConsumeReset(context.Background(), users.ResetPasswordRequest{
			Token: token, NewPassword: "another123", ConfirmPassword: "another123",
		})
		assertAPIError(t, err, 401, "invalid_reset_token")
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		env.register(t)
		token := issueToken(t, env)

		env.db.Model(&users.PasswordReset{}).
			Where("1 = 1").
			Update("expires_at", time.Now().Add(-time.Minute))

		err := env.usecase.ConsumeReset(context.Background(), users.ResetPasswordRequest{
			Token: token, NewPassword: "newpass123", ConfirmPassword: "newpass123",
		})
		assertAPIError(t, err, 401, "reset_token_expired")
	})

	t.Run("unknown token is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		err := env.usecase.ConsumeReset(context.Background(), users.ResetPasswordRequest{
			Token: "deadbeef", NewPassword: "newpass123", ConfirmPassword: "newpass123",
		})
		assertAPIError(t, err, 401, "invalid_reset_token")
	})

	t.Run("password policy applies", func(t *testing.T) {
		env := newTestEnv(t)
		env.register(t)
		token := issueToken(t, env)

		err := env.usecase.ConsumeReset(context.Background(), users.ResetPasswordRequest{
			Token: token, NewPassword: "short", ConfirmPassword: "short",
		})
		assertAPIError(t, err, 400, "password must be between 8 and 16 characters")

		err = env.usecase.ConsumeReset(context.Background(), users.ResetPasswordRequest{
			Token: token, NewPassword: "newpass123", ConfirmPassword: "different1",
		})
		assertAPIError(t, err, 400, "password confirmation does not match")

		// The token survives failed attempts and still works afterwards.
		err = env.usecase.ConsumeReset(context.Background(), users.ResetPasswordRequest{
			Token: token, NewPassword: "newpass123", ConfirmPassword: "newpass123",
		})
		assert.NoError(t, err)
	})
}

package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/pravaah/backend/internal/domain/users"
	"github.com/pravaah/backend/pkg/response"
)

const resetTokenTTL = 15 * time.Minute

// RequestReset mints a one-time reset token and mails it. The answer is the
// same whether or not the address has an account, so this path cannot be
// used to enumerate users. Prior tokens for the user are invalidated first.
func (u Usecase) RequestReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return response.ValidationError("email is required")
	}

	user, err := u.repo.FindByEmail(ctx, email)
	if err != nil {
		return response.InternalServerError(err)
	}
	if user == nil {
		return nil
	}

	if err := u.repo.DeleteResetsForUser(ctx, user.ExtID); err != nil {
		return response.InternalServerError(err)
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return response.InternalServerError(err)
	}
	token := hex.EncodeToString(tokenBytes)

	// Only the hash hits the database; a leak does not expose usable tokens.
	hash := sha256.Sum256([]byte(token))
	reset := users.PasswordReset{
		UserExtID: user.ExtID,
		TokenHash: hex.EncodeToString(hash[:]),
		ExpiresAt: time.Now().Add(resetTokenTTL),
		CreatedAt: time.Now(),
	}

	if err := u.repo.CreateReset(ctx, reset); err != nil {
		return response.InternalServerError(err)
	}

	resetURL := fmt.Sprintf("%s?token=%s", u.resetURLBase, token)
	text := fmt.Sprintf("Reset your password using this link (valid for 15 minutes): %s", resetURL)
	html := fmt.Sprintf(`<p>Reset your password using <a href="%s">this link</a>. The link is valid for 15 minutes.</p>`, resetURL)

	if err := u.mailer.Send(user.Email, "Password reset request", text, html); err != nil {
		return response.InternalServerError(err)
	}
	return nil
}

// ConsumeReset exchanges a live reset token for a new password. The token
// record is deleted on success, so a token can be consumed exactly once.
func (u Usecase) ConsumeReset(ctx context.Context, payload users.ResetPasswordRequest) error {
	token := strings.TrimSpace(payload.Token)
	newPassword := strings.TrimSpace(payload.NewPassword)
	confirm := strings.TrimSpace(payload.ConfirmPassword)

	if token == "" {
		return response.ValidationError("reset token is required")
	}
	if newPassword == "" || confirm == "" {
		return response.ValidationError("password and confirmation are required")
	}
	if newPassword != confirm {
		return response.ValidationError("password confirmation does not match")
	}
	if len(newPassword) < 8 || len(newPassword) > 16 {
		return response.ValidationError("password must be between 8 and 16 characters")
	}

	hash := sha256.Sum256([]byte(token))
	reset, err := u.repo.FindResetByHash(ctx, hex.EncodeToString(hash[:]))
	if err != nil {
		return response.InternalServerError(err)
	}
	if reset == nil {
		return response.Unauthorized("invalid_reset_token")
	}
	if time.Now().After(reset.ExpiresAt) {
		return response.Unauthorized("reset_token_expired")
	}

	user, err := u.repo.FindByExtID(ctx, reset.UserExtID)
	if err != nil {
		return response.InternalServerError(err)
	}
	if user == nil {
		return response.Unauthorized("invalid_reset_token")
	}

	passwordHash, err := HashPassword(newPassword)
	if err != nil {
		return response.InternalServerError(err)
	}
	if err := u.repo.UpdatePassword(ctx, user.ExtID, passwordHash); err != nil {
		return response.InternalServerError(err)
	}

	if err := u.repo.DeleteReset(ctx, reset.ID); err != nil {
		return response.InternalServerError(err)
	}
	return nil
}

package usecase

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"github.com/pravaah/backend/internal/domain/users"
	"github.com/pravaah/backend/pkg/response"
)

func (u Usecase) UpdateAccount(ctx context.Context, extID string, payload users.UpdateAccountRequest) (*users.Profile, error) {
	fullName := strings.TrimSpace(payload.FullName)
	email := strings.ToLower(strings.TrimSpace(payload.Email))

	if fullName == "" && email == "" {
		return nil, response.ValidationError("at least one field is required to update")
	}

	fields := map[string]interface{}{"updated_at": time.Now()}
	if fullName != "" {
		if len(fullName) < 3 {
			return nil, response.ValidationError("full name must be at least 3 characters long")
		}
		fields["full_name"] = fullName
	}
	if email != "" {
		existing, err := u.repo.FindByEmail(ctx, email)
		if err != nil {
			return nil, response.InternalServerError(err)
		}
		if existing != nil && existing.ExtID != extID {
			return nil, response.Conflict("email_already_registered")
		}
		fields["email"] = email
	}

	if err := u.repo.UpdateAccount(ctx, extID, fields); err != nil {
		return nil, response.InternalServerError(err)
	}
	return u.GetProfileByExtID(ctx, extID)
}

func (u Usecase) UpdateProfilePicture(ctx context.Context, extID string, avatar, cover *multipart.FileHeader) (*users.Profile, error) {
	if avatar == nil && cover == nil {
		return nil, response.ValidationError("avatar or cover image is required")
	}

	fields := map[string]interface{}{"updated_at": time.Now()}
	if avatar != nil {
		url, err := u.files.UploadImage(ctx, avatar, "avatars")
		if err != nil {
			return nil, response.InternalServerError(err)
		}
		fields["avatar"] = url
	}
	if cover != nil {
		url, err := u.files.UploadImage(ctx, cover, "covers")
		if err != nil {
			return nil, response.InternalServerError(err)
		}
		fields["cover_image"] = url
	}

	if err := u.repo.UpdateAccount(ctx, extID, fields); err != nil {
		return nil, response.InternalServerError(err)
	}
	return u.GetProfileByExtID(ctx, extID)
}

// GetChannelProfile returns a public channel page. viewerExtID is empty when
// the caller is unauthenticated.
func (u Usecase) GetChannelProfile(ctx context.Context, userName, viewerExtID string) (*users.ChannelProfile, error) {
	userName = strings.ToLower(strings.TrimSpace(userName))
	if userName == "" {
		return nil, response.ValidationError("username is required")
	}

	user, err := u.repo.FindByUserName(ctx, userName)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if user == nil {
		return nil, response.NotFound("channel_not_found")
	}

	subscribers, err := u.repo.CountSubscribers(ctx, user.ExtID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	subscribedTo, err := u.repo.CountSubscribedTo(ctx, user.ExtID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	isSubscribed := false
	if viewerExtID != "" {
		sub, err := u.repo.FindSubscription(ctx, viewerExtID, user.ExtID)
		if err != nil {
			return nil, response.InternalServerError(err)
		}
		isSubscribed = sub != nil
	}

	return &users.ChannelProfile{
		Profile:           user.ToProfile(),
		SubscriberCount:   subscribers,
		SubscribedToCount: subscribedTo,
		IsSubscribed:      isSubscribed,
	}, nil
}

// ToggleSubscription subscribes the caller to a channel, or unsubscribes
// when a subscription already exists. Returns whether the caller is
// subscribed after the call.
func (u Usecase) ToggleSubscription(ctx context.Context, subscriberExtID, channelExtID string) (bool, error) {
	if channelExtID == "" {
		return false, response.ValidationError("channel id is required")
	}
	if subscriberExtID == channelExtID {
		return false, response.ValidationError("cannot subscribe to your own channel")
	}

	channel, err := u.repo.FindByExtID(ctx, channelExtID)
	if err != nil {
		return false, response.InternalServerError(err)
	}
	if channel == nil {
		return false, response.NotFound("channel_not_found")
	}

	existing, err := u.repo.FindSubscription(ctx, subscriberExtID, channelExtID)
	if err != nil {
		return false, response.InternalServerError(err)
	}

	if existing != nil {
		if err := u.repo.DeleteSubscription(ctx, existing.ID); err != nil {
			return false, response.InternalServerError(err)
		}
		return false, nil
	}

	sub := users.Subscription{
		SubscriberExtID: subscriberExtID,
		ChannelExtID:    channelExtID,
		CreatedAt:       time.Now(),
	}
	if err := u.repo.CreateSubscription(ctx, sub); err != nil {
		return false, response.InternalServerError(err)
	}
	return true, nil
}

func (u Usecase) GetWatchHistory(ctx context.Context, extID string) ([]users.WatchHistoryEntry, error) {
	entries, err := u.repo.ListWatchHistory(ctx, extID, 100)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	return entries, nil
}

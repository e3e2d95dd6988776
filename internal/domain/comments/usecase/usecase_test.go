package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pravaah/backend/internal/domain/comments"
	"github.com/pravaah/backend/internal/domain/comments/repository"
	"github.com/pravaah/backend/internal/domain/users"
	"github.com/pravaah/backend/internal/domain/videos"
	videoRepository "github.com/pravaah/backend/internal/domain/videos/repository"
	"github.com/pravaah/backend/pkg/response"
)

type testEnv struct {
	db      *gorm.DB
	usecase *Usecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&users.User{}, &videos.Video{}, &comments.Comment{}))

	uc := NewUsecase(repository.NewComment(db), videoRepository.NewVideo(db))
	return &testEnv{db: db, usecase: uc}
}

func (e *testEnv) seedVideo(t *testing.T, extID string) {
	t.Helper()
	require.NoError(t, e.db.Create(&videos.Video{
		ExtID:       extID,
		OwnerExtID:  "user_owner",
		Title:       "Seeded video",
		Description: "A sufficiently long description",
		IsPublished: true,
	}).Error)
}

func assertAPIError(t *testing.T, err error, code int, message string) {
	t.Helper()
	var apiErr *response.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, code, apiErr.Code)
	assert.Equal(t, message, apiErr.Message)
}

func TestAdd(t *testing.T) {
	t.Run("creates a comment on an existing video", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedVideo(t, "video_one")

		comment, err := env.usecase.Add(context.Background(), "video_one", "user_commenter", "  nice video  ")
		require.NoError(t, err)
		assert.Equal(t, "nice video", comment.Content)
		assert.Equal(t, "video_one", comment.VideoExtID)
		assert.True(t, strings.HasPrefix(comment.ExtID, "comment_"))
	})

	t.Run("missing video", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.usecase.Add(context.Background(), "video_missing", "user_commenter", "hello")
		assertAPIError(t, err, 404, "video_not_found")
	})

	t.Run("empty content", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.usecase.Add(context.Background(), "video_one", "user_commenter", "   ")
		assertAPIError(t, err, 400, "comment content is required")
	})

	t.Run("content cap", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.usecase.Add(context.Background(), "video_one", "user_commenter", strings.Repeat("x", 281))
		assertAPIError(t, err, 400, "comment cannot exceed 280 characters")
	})
}

func TestListForVideo(t *testing.T) {
	env := newTestEnv(t)
	env.seedVideo(t, "video_one")
	require.NoError(t, env.db.Create(&users.User{
		ExtID: "user_commenter", UserName: "commenter", Email: "c@example.com",
	}).Error)

	for i := 0; i < 5; i++ {
		_, err := env.usecase.Add(context.Background(), "video_one", "user_commenter", "comment body")
		require.NoError(t, err)
	}

	resp, err := env.usecase.ListForVideo(context.Background(), "video_one", 1, 3)
	require.NoError(t, err)
	assert.Len(t, resp.Comments, 3)
	assert.Equal(t, "commenter", resp.Comments[0].Owner.UserName)

	resp, err = env.usecase.ListForVideo(context.Background(), "video_one", 2, 3)
	require.NoError(t, err)
	assert.Len(t, resp.Comments, 2)
}

func TestUpdateOwnership(t *testing.T) {
	env := newTestEnv(t)
	env.seedVideo(t, "video_one")

	comment, err := env.usecase.Add(context.Background(), "video_one", "user_commenter", "original")
	require.NoError(t, err)

	_, err = env.usecase.Update(context.Background(), comment.ExtID, "user_other", "hijacked")
	assertAPIError(t, err, 404, "comment_not_found_or_access_denied")

	updated, err := env.usecase.Update(context.Background(), comment.ExtID, "user_commenter", "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestDeleteOwnership(t *testing.T) {
	env := newTestEnv(t)
	env.seedVideo(t, "video_one")

	comment, err := env.usecase.Add(context.Background(), "video_one", "user_commenter", "to be removed")
	require.NoError(t, err)

	err = env.usecase.Delete(context.Background(), comment.ExtID, "user_other")
	assertAPIError(t, err, 404, "comment_not_found_or_access_denied")

	require.NoError(t, env.usecase.Delete(context.Background(), comment.ExtID, "user_commenter"))

	err = env.usecase.Delete(context.Background(), comment.ExtID, "user_commenter")
	assertAPIError(t, err, 404, "comment_not_found_or_access_denied")
}

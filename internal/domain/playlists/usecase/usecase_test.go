package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pravaah/backend/internal/domain/playlists"
	"github.com/pravaah/backend/internal/domain/playlists/repository"
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
	require.NoError(t, db.AutoMigrate(
		&users.User{},
		&videos.Video{},
		&playlists.Playlist{},
		&playlists.PlaylistVideo{},
	))
	uc := NewUsecase(repository.NewPlaylist(db), videoRepository.NewVideo(db))
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

func (e *testEnv) create(t *testing.T, ownerExtID string) *playlists.Playlist {
	t.Helper()
	p, err := e.usecase.Create(context.Background(), ownerExtID, playlists.CreateRequest{
		Name:        "Watch later",
		Description: "Videos queued for the weekend",
	})
	require.NoError(t, err)
	return p
}

func assertAPIError(t *testing.T, err error, code int, message string) {
	t.Helper()
	var apiErr *response.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, code, apiErr.Code)
	assert.Equal(t, message, apiErr.Message)
}

func TestCreate(t *testing.T) {
	t.Run("creates with trimmed fields", func(t *testing.T) {
		env := newTestEnv(t)
		p, err := env.usecase.Create(context.Background(), "user_abc", playlists.CreateRequest{
			Name:        "  Watch later  ",
			Description: "  Videos queued for the weekend  ",
		})
		require.NoError(t, err)
		assert.Equal(t, "Watch later", p.Name)
		assert.True(t, strings.HasPrefix(p.ExtID, "playlist_"))
	})

	t.Run("name bounds", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.usecase.Create(context.Background(), "user_abc", playlists.CreateRequest{
			Name: "ab", Description: "Videos queued for the weekend",
		})
		assertAPIError(t, err, 400, "playlist name must be between 3 and 100 characters")
	})

	t.Run("description bounds", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.usecase.Create(context.Background(), "user_abc", playlists.CreateRequest{
			Name: "Watch later", Description: "abc",
		})
		assertAPIError(t, err, 400, "playlist description must be between 5 and 500 characters")
	})
}

func TestListOwn(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "user_abc")
	env.create(t, "user_abc")
	env.create(t, "user_other")

	list, err := env.usecase.ListOwn(context.Background(), "user_abc")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestGet(t *testing.T) {
	t.Run("expands videos in insertion order", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.db.Create(&users.User{
			ExtID: "user_owner", UserName: "owner", Email: "owner@example.com",
		}).Error)
		env.seedVideo(t, "video_one")
		env.seedVideo(t, "video_two")

		p := env.create(t, "user_abc")
		require.NoError(t, env.usecase.AddVideo(context.Background(), p.ExtID, "video_one", "user_abc"))
		require.NoError(t, env.usecase.AddVideo(context.Background(), p.ExtID, "video_two", "user_abc"))

		detail, err := env.usecase.Get(context.Background(), p.ExtID)
		require.NoError(t, err)
		require.Len(t, detail.Videos, 2)
		assert.Equal(t, "video_one", detail.Videos[0].ExtID)
		assert.Equal(t, "owner", detail.Videos[0].Owner.UserName)
	})

	t.Run("missing playlist", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.usecase.Get(context.Background(), "playlist_missing")
		assertAPIError(t, err, 404, "playlist_not_found")
	})
}

func TestAddVideo(t *testing.T) {
	t.Run("duplicate add is a no-op", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedVideo(t, "video_one")
		p := env.create(t, "user_abc")

		require.NoError(t, env.usecase.AddVideo(context.Background(), p.ExtID, "video_one", "user_abc"))
		require.NoError(t, env.usecase.AddVideo(context.Background(), p.ExtID, "video_one", "user_abc"))

		var count int64
		env.db.Model(&playlists.PlaylistVideo{}).Count(&count)
		assert.EqualValues(t, 1, count)
	})

	t.Run("missing video", func(t *testing.T) {
		env := newTestEnv(t)
		p := env.create(t, "user_abc")
		err := env.usecase.AddVideo(context.Background(), p.ExtID, "video_missing", "user_abc")
		assertAPIError(t, err, 404, "video_not_found")
	})

	t.Run("non-owner cannot add", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedVideo(t, "video_one")
		p := env.create(t, "user_abc")
		err := env.usecase.AddVideo(context.Background(), p.ExtID, "video_one", "user_other")
		assertAPIError(t, err, 404, "playlist_not_found_or_access_denied")
	})
}

func TestRemoveVideo(t *testing.T) {
	env := newTestEnv(t)
	env.seedVideo(t, "video_one")
	p := env.create(t, "user_abc")
	require.NoError(t, env.usecase.AddVideo(context.Background(), p.ExtID, "video_one", "user_abc"))

	err := env.usecase.RemoveVideo(context.Background(), p.ExtID, "video_one", "user_other")
	assertAPIError(t, err, 404, "playlist_not_found_or_access_denied")

	require.NoError(t, env.usecase.RemoveVideo(context.Background(), p.ExtID, "video_one", "user_abc"))

	err = env.usecase.RemoveVideo(context.Background(), p.ExtID, "video_one", "user_abc")
	assertAPIError(t, err, 404, "video_not_in_playlist")
}

func TestUpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	env.seedVideo(t, "video_one")
	p := env.create(t, "user_abc")
	require.NoError(t, env.usecase.AddVideo(context.Background(), p.ExtID, "video_one", "user_abc"))

	t.Run("non-owner cannot update", func(t *testing.T) {
		_, err := env.usecase.Update(context.Background(), p.ExtID, "user_other", playlists.UpdateRequest{
			Name: "Hijacked",
		})
		assertAPIError(t, err, 404, "playlist_not_found_or_access_denied")
	})

	t.Run("owner renames", func(t *testing.T) {
		updated, err := env.usecase.Update(context.Background(), p.ExtID, "user_abc", playlists.UpdateRequest{
			Name: "Weekend queue",
		})
		require.NoError(t, err)
		assert.Equal(t, "Weekend queue", updated.Name)
	})

	t.Run("delete removes memberships too", func(t *testing.T) {
		err := env.usecase.Delete(context.Background(), p.ExtID, "user_other")
		assertAPIError(t, err, 404, "playlist_not_found_or_access_denied")

		require.NoError(t, env.usecase.Delete(context.Background(), p.ExtID, "user_abc"))

		var count int64
		env.db.Model(&playlists.PlaylistVideo{}).Count(&count)
		assert.Zero(t, count)

		_, err = env.usecase.Get(context.Background(), p.ExtID)
		assertAPIError(t, err, 404, "playlist_not_found")
	})
}

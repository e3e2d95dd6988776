package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/pravaah/backend/internal/domain/playlists"
	"github.com/pravaah/backend/internal/domain/videos"
	"github.com/pravaah/backend/pkg/response"
)

type PlaylistRepository interface {
	Create(ctx context.Context, p *playlists.Playlist) error
	FindByExtID(ctx context.Context, extID string) (*playlists.Playlist, error)
	ListForOwner(ctx context.Context, ownerExtID string) ([]playlists.Playlist, error)
	Update(ctx context.Context, extID, ownerExtID string, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, extID, ownerExtID string) (int64, error)
	AddVideo(ctx context.Context, playlistExtID, videoExtID string) error
	RemoveVideo(ctx context.Context, playlistExtID, videoExtID string) (int64, error)
	ListVideoExtIDs(ctx context.Context, playlistExtID string) ([]string, error)
}

// VideoResolver looks up videos so playlists only ever reference ones that
// exist, and can expand memberships into full details.
type VideoResolver interface {
	Exists(ctx context.Context, extID string) (bool, error)
	FindByExtIDs(ctx context.Context, extIDs []string) ([]videos.Video, error)
	AttachOwners(ctx context.Context, list []videos.Video) ([]videos.VideoDetail, error)
}

type Usecase struct {
	repo   PlaylistRepository
	videos VideoResolver
}

func NewUsecase(repo PlaylistRepository, videos VideoResolver) *Usecase {
	return &Usecase{repo: repo, videos: videos}
}

func (u *Usecase) Create(ctx context.Context, ownerExtID string, req playlists.CreateRequest) (*playlists.Playlist, error) {
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if len(name) < 3 || len(name) > 100 {
		return nil, response.ValidationError("playlist name must be between 3 and 100 characters")
	}
	if len(description) < 5 || len(description) > 500 {
		return nil, response.ValidationError("playlist description must be between 5 and 500 characters")
	}

	p := &playlists.Playlist{
		ExtID:       "playlist_" + ksuid.New().String(),
		OwnerExtID:  ownerExtID,
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := u.repo.Create(ctx, p); err != nil {
		return nil, response.InternalServerError(err)
	}
	return p, nil
}

func (u *Usecase) ListOwn(ctx context.Context, ownerExtID string) ([]playlists.Playlist, error) {
	list, err := u.repo.ListForOwner(ctx, ownerExtID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	return list, nil
}

// Get returns a playlist with its videos expanded. Membership rows whose
// video has since been deleted are dropped from the result.
func (u *Usecase) Get(ctx context.Context, extID string) (*playlists.PlaylistDetail, error) {
	p, err := u.repo.FindByExtID(ctx, extID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if p == nil {
		return nil, response.NotFound("playlist_not_found")
	}

	ids, err := u.repo.ListVideoExtIDs(ctx, extID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	vids, err := u.videos.FindByExtIDs(ctx, ids)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	details, err := u.videos.AttachOwners(ctx, vids)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	return &playlists.PlaylistDetail{Playlist: *p, Videos: details}, nil
}

func (u *Usecase) Update(ctx context.Context, extID, ownerExtID string, req playlists.UpdateRequest) (*playlists.Playlist, error) {
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" && description == "" {
		return nil, response.ValidationError("at least one of name or description is required")
	}

	fields := map[string]interface{}{"updated_at": time.Now()}
	if name != "" {
		if len(name) < 3 || len(name) > 100 {
			return nil, response.ValidationError("playlist name must be between 3 and 100 characters")
		}
		fields["name"] = name
	}
	if description != "" {
		if len(description) < 5 || len(description) > 500 {
			return nil, response.ValidationError("playlist description must be between 5 and 500 characters")
		}
		fields["description"] = description
	}

	rows, err := u.repo.Update(ctx, extID, ownerExtID, fields)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if rows == 0 {
		return nil, response.NotFound("playlist_not_found_or_access_denied")
	}
	return u.repo.FindByExtID(ctx, extID)
}

func (u *Usecase) Delete(ctx context.Context, extID, ownerExtID string) error {
	rows, err := u.repo.Delete(ctx, extID, ownerExtID)
	if err != nil {
		return response.InternalServerError(err)
	}
	if rows == 0 {
		return response.NotFound("playlist_not_found_or_access_denied")
	}
	return nil
}

func (u *Usecase) AddVideo(ctx context.Context, playlistExtID, videoExtID, ownerExtID string) error {
	p, err := u.repo.FindByExtID(ctx, playlistExtID)
	if err != nil {
		return response.InternalServerError(err)
	}
	if p == nil || p.OwnerExtID != ownerExtID {
		return response.NotFound("playlist_not_found_or_access_denied")
	}

	exists, err := u.videos.Exists(ctx, videoExtID)
	if err != nil {
		return response.InternalServerError(err)
	}
	if !exists {
		return response.NotFound("video_not_found")
	}

	if err := u.repo.AddVideo(ctx, playlistExtID, videoExtID); err != nil {
		return response.InternalServerError(err)
	}
	return nil
}

func (u *Usecase) RemoveVideo(ctx context.Context, playlistExtID, videoExtID, ownerExtID string) error {
	p, err := u.repo.FindByExtID(ctx, playlistExtID)
	if err != nil {
		return response.InternalServerError(err)
	}
	if p == nil || p.OwnerExtID != ownerExtID {
		return response.NotFound("playlist_not_found_or_access_denied")
	}

	rows, err := u.repo.RemoveVideo(ctx, playlistExtID, videoExtID)
	if err != nil {
		return response.InternalServerError(err)
	}
	if rows == 0 {
		return response.NotFound("video_not_in_playlist")
	}
	return nil
}

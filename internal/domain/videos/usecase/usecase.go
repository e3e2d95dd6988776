package usecase

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"github.com/pravaah/backend/internal/domain/videos"
	"github.com/pravaah/backend/pkg/response"
	"github.com/segmentio/ksuid"
)

type VideoRepository interface {
	Create(ctx context.Context, video videos.Video) error
	FindByExtID(ctx context.Context, extID string) (*videos.Video, error)
	Update(ctx context.Context, extID, ownerExtID string, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, extID, ownerExtID string) (int64, error)
	List(ctx context.Context, q videos.ListQuery) ([]videos.Video, int64, error)
	AttachOwners(ctx context.Context, list []videos.Video) ([]videos.VideoDetail, error)
	ChannelStats(ctx context.Context, ownerExtID string) (*videos.ChannelStats, error)
}

type FileStore interface {
	UploadImage(ctx context.Context, fh *multipart.FileHeader, prefix string) (string, error)
	UploadVideo(ctx context.Context, fh *multipart.FileHeader) (string, float64, error)
}

// ViewRecorder buffers a view increment; failures are not surfaced.
type ViewRecorder interface {
	Record(ctx context.Context, videoExtID string)
}

// HistoryRecorder appends to a viewer's watch history.
type HistoryRecorder interface {
	AddWatchEntry(ctx context.Context, userExtID, videoExtID string) error
}

type Usecase struct {
	repo    VideoRepository
	files   FileStore
	viewer  ViewRecorder
	history HistoryRecorder
}

func NewUsecase(repo VideoRepository, files FileStore, viewer ViewRecorder, history HistoryRecorder) *Usecase {
	return &Usecase{
		repo:    repo,
		files:   files,
		viewer:  viewer,
		history: history,
	}
}

func (u Usecase) Publish(ctx context.Context, ownerExtID string, payload videos.PublishRequest, videoFile, thumbnail *multipart.FileHeader) (*videos.Video, error) {
	title := strings.TrimSpace(payload.Title)
	description := strings.TrimSpace(payload.Description)

	if len(title) < 3 {
		return nil, response.ValidationError("title must be at least 3 characters long")
	}
	if len(description) < 10 {
		return nil, response.ValidationError("description must be at least 10 characters long")
	}
	if videoFile == nil {
		return nil, response.ValidationError("video file is required")
	}
	if !strings.HasPrefix(videoFile.Header.Get("Content-Type"), "video/") {
		return nil, response.ValidationError("only video files are allowed")
	}
	if thumbnail == nil {
		return nil, response.ValidationError("thumbnail image is required")
	}
	if !strings.HasPrefix(thumbnail.Header.Get("Content-Type"), "image/") {
		return nil, response.ValidationError("only image files are allowed as thumbnail")
	}

	videoURL, duration, err := u.files.UploadVideo(ctx, videoFile)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	thumbnailURL, err := u.files.UploadImage(ctx, thumbnail, "thumbnails")
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	video := videos.Video{
		ExtID:       "video_" + ksuid.New().String(),
		OwnerExtID:  ownerExtID,
		Title:       title,
		Description: description,
		VideoFile:   videoURL,
		Thumbnail:   thumbnailURL,
		Duration:    duration,
		IsPublished: true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := u.repo.Create(ctx, video); err != nil {
		return nil, response.InternalServerError(err)
	}
	return &video, nil
}

// Get returns a video and, when a viewer is known, records the view and the
// watch-history entry. Unpublished videos are visible to their owner only.
func (u Usecase) Get(ctx context.Context, extID, viewerExtID string) (*videos.VideoDetail, error) {
	video, err := u.repo.FindByExtID(ctx, extID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if video == nil || (!video.IsPublished && video.OwnerExtID != viewerExtID) {
		return nil, response.NotFound("video_not_found")
	}

	if viewerExtID != "" && viewerExtID != video.OwnerExtID {
		u.viewer.Record(ctx, video.ExtID)
		if err := u.history.AddWatchEntry(ctx, viewerExtID, video.ExtID); err != nil {
			return nil, response.InternalServerError(err)
		}
	}

	details, err := u.repo.AttachOwners(ctx, []videos.Video{*video})
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	return &details[0], nil
}

func (u Usecase) Update(ctx context.Context, extID, ownerExtID string, payload videos.UpdateRequest, videoFile, thumbnail *multipart.FileHeader) (*videos.Video, error) {
	title := strings.TrimSpace(payload.Title)
	description := strings.TrimSpace(payload.Description)

	if title == "" && description == "" && videoFile == nil && thumbnail == nil {
		return nil, response.ValidationError("at least one field is required to update")
	}

	fields := map[string]interface{}{"updated_at": time.Now()}
	if title != "" {
		if len(title) < 3 {
			return nil, response.ValidationError("title must be at least 3 characters long")
		}
		fields["title"] = title
	}
	if description != "" {
		if len(description) < 10 {
			return nil, response.ValidationError("description must be at least 10 characters long")
		}
		fields["description"] = description
	}
	if videoFile != nil {
		url, duration, err := u.files.UploadVideo(ctx, videoFile)
		if err != nil {
			return nil, response.InternalServerError(err)
		}
		fields["video_file"] = url
		fields["duration"] = duration
	}
	if thumbnail != nil {
		url, err := u.files.UploadImage(ctx, thumbnail, "thumbnails")
		if err != nil {
			return nil, response.InternalServerError(err)
		}
		fields["thumbnail"] = url
	}

	affected, err := u.repo.Update(ctx, extID, ownerExtID, fields)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if affected == 0 {
		return nil, response.NotFound("video_not_found_or_access_denied")
	}
	return u.repo.FindByExtID(ctx, extID)
}

func (u Usecase) Delete(ctx context.Context, extID, ownerExtID string) error {
	affected, err := u.repo.Delete(ctx, extID, ownerExtID)
	if err != nil {
		return response.InternalServerError(err)
	}
	if affected == 0 {
		return response.NotFound("video_not_found_or_access_denied")
	}
	return nil
}

func (u Usecase) TogglePublishStatus(ctx context.Context, extID, ownerExtID string) (*videos.Video, error) {
	video, err := u.repo.FindByExtID(ctx, extID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if video == nil || video.OwnerExtID != ownerExtID {
		return nil, response.NotFound("video_not_found_or_access_denied")
	}

	fields := map[string]interface{}{
		"is_published": !video.IsPublished,
		"updated_at":   time.Now(),
	}
	if _, err := u.repo.Update(ctx, extID, ownerExtID, fields); err != nil {
		return nil, response.InternalServerError(err)
	}
	video.IsPublished = !video.IsPublished
	return video, nil
}

func (u Usecase) List(ctx context.Context, q videos.ListQuery) (*videos.ListResponse, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 50 {
		q.Limit = 10
	}

	list, total, err := u.repo.List(ctx, q)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	details, err := u.repo.AttachOwners(ctx, list)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	return &videos.ListResponse{
		Videos: details,
		Page:   q.Page,
		Limit:  q.Limit,
		Total:  total,
	}, nil
}

func (u Usecase) GetChannelStats(ctx context.Context, ownerExtID string) (*videos.ChannelStats, error) {
	stats, err := u.repo.ChannelStats(ctx, ownerExtID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	return stats, nil
}

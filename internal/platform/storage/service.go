package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/segmentio/ksuid"
)

// StorageService uploads user media to the public bucket and returns the
// object's public URL. Upload failures surface as errors for the caller to
// map onto its own taxonomy; nothing is persisted on failure.
type StorageService struct {
	client *minio.Client
	bucket string
}

func NewStorageService(client *minio.Client, bucket string) *StorageService {
	return &StorageService{
		client: client,
		bucket: bucket,
	}
}

// UploadImage stores an avatar, cover or thumbnail under the given prefix.
func (s *StorageService) UploadImage(ctx context.Context, fh *multipart.FileHeader, prefix string) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	objectName := s.objectName(prefix, fh.Filename)
	_, err = s.client.PutObject(
		ctx,
		s.bucket,
		objectName,
		file,
		fh.Size,
		minio.PutObjectOptions{
			ContentType: fh.Header.Get("Content-Type"),
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return s.publicURL(objectName), nil
}

// UploadVideo stores a video file and probes its duration in seconds.
func (s *StorageService) UploadVideo(ctx context.Context, fh *multipart.FileHeader) (string, float64, error) {
	file, err := fh.Open()
	if err != nil {
		return "", 0, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	// The duration probe needs a local path, so spool to a temp file first.
	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(fh.Filename))
	if err != nil {
		return "", 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		return "", 0, fmt.Errorf("failed to spool upload: %w", err)
	}

	duration, err := probeDuration(ctx, tmp.Name())
	if err != nil {
		return "", 0, err
	}

	objectName := s.objectName("videos", fh.Filename)
	_, err = s.client.FPutObject(
		ctx,
		s.bucket,
		objectName,
		tmp.Name(),
		minio.PutObjectOptions{
			ContentType: fh.Header.Get("Content-Type"),
		},
	)
	if err != nil {
		return "", 0, fmt.Errorf("failed to upload video: %w", err)
	}

	return s.publicURL(objectName), duration, nil
}

func (s *StorageService) objectName(prefix, filename string) string {
	return fmt.Sprintf("%s/%s%s", prefix, ksuid.New().String(), filepath.Ext(filename))
}

func (s *StorageService) publicURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectName)
}

func probeDuration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse video duration: %w", err)
	}
	return duration, nil
}

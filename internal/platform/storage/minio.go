package storage

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pravaah/backend/internal/platform/config"
)

// InitMinIO connects to MinIO and makes sure the media bucket exists with a
// public-read policy so stored avatars, thumbnails and videos are directly
// addressable by URL.
func InitMinIO(cfg config.MinIOConfig) (*minio.Client, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("error initializing minio client: %w", err)
	}

	if _, err := minioClient.ListBuckets(context.Background()); err != nil {
		return nil, fmt.Errorf("error verifying minio connection: %w", err)
	}

	if err := checkAndCreateBucket(minioClient, cfg.BucketMedia); err != nil {
		return nil, err
	}

	return minioClient, nil
}

func checkAndCreateBucket(client *minio.Client, bucketName string) error {
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("error checking bucket '%s': %w", bucketName, err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("error creating bucket '%s': %w", bucketName, err)
		}
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/*"]
			}
		]
	}`, bucketName)

	if err := client.SetBucketPolicy(ctx, bucketName, policy); err != nil {
		return fmt.Errorf("error setting policy public-read for bucket '%s': %w", bucketName, err)
	}
	return nil
}

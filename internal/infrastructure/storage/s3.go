package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/faridcreations/booking-api/internal/core/domain"
	"github.com/faridcreations/booking-api/internal/core/ports"
)

const keyPrefix = "categories/"

// S3API is the subset of the S3 client used by S3Uploader.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader stores category images in a bucket and returns their public URL.
type S3Uploader struct {
	client  S3API
	bucket  string
	baseURL string
	logger  zerolog.Logger
}

// NewS3Uploader builds an uploader. When publicBaseURL is empty the virtual
// hosted S3 URL for bucket in region is used.
func NewS3Uploader(client S3API, bucket, region, publicBaseURL string, logger zerolog.Logger) *S3Uploader {
	base := strings.TrimRight(publicBaseURL, "/")
	if base == "" && bucket != "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &S3Uploader{client: client, bucket: bucket, baseURL: base, logger: logger}
}

func (u *S3Uploader) Enabled() bool {
	return u != nil && u.client != nil && u.bucket != ""
}

// Upload writes the image under a random key, keeping the original extension.
// It returns domain.ErrUploadsDisabled when no bucket is configured.
func (u *S3Uploader) Upload(ctx context.Context, in ports.UploadInput) (string, error) {
	if !u.Enabled() {
		return "", domain.ErrUploadsDisabled
	}

	key := keyPrefix + uuid.NewString() + strings.ToLower(path.Ext(in.Filename))
	input := &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        in.Body,
		ContentType: aws.String(in.ContentType),
	}
	if in.Size > 0 {
		input.ContentLength = aws.Int64(in.Size)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("storage: s3 put %s: %w", key, err)
	}

	u.logger.Info().Str("key", key).Int64("size", in.Size).Msg("category image uploaded")
	return u.baseURL + "/" + key, nil
}

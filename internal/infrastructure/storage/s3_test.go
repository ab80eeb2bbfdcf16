package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faridcreations/booking-api/internal/core/domain"
	"github.com/faridcreations/booking-api/internal/core/ports"
)

type mockS3Client struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (m *mockS3Client) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.input = in
	m.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func imageInput() ports.UploadInput {
	return ports.UploadInput{
		Filename:    "Hair.PNG",
		ContentType: "image/png",
		Size:        4,
		Body:        strings.NewReader("data"),
	}
}

func TestS3Uploader_Upload(t *testing.T) {
	mock := &mockS3Client{}
	u := NewS3Uploader(mock, "imgs", "us-east-1", "https://cdn.example.com/", zerolog.Nop())

	url, err := u.Upload(context.Background(), imageInput())
	require.NoError(t, err)

	key := *mock.input.Key
	assert.True(t, strings.HasPrefix(key, "categories/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.Equal(t, "imgs", *mock.input.Bucket)
	assert.Equal(t, "image/png", *mock.input.ContentType)
	assert.Equal(t, int64(4), *mock.input.ContentLength)
	assert.Equal(t, []byte("data"), mock.body)
	assert.Equal(t, "https://cdn.example.com/"+key, url)
}

func TestS3Uploader_DefaultURL(t *testing.T) {
	mock := &mockS3Client{}
	u := NewS3Uploader(mock, "imgs", "eu-west-1", "", zerolog.Nop())

	url, err := u.Upload(context.Background(), imageInput())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://imgs.s3.eu-west-1.amazonaws.com/categories/"))
}

func TestS3Uploader_Disabled(t *testing.T) {
	u := NewS3Uploader(nil, "", "us-east-1", "", zerolog.Nop())
	assert.False(t, u.Enabled())

	_, err := u.Upload(context.Background(), imageInput())
	assert.ErrorIs(t, err, domain.ErrUploadsDisabled)
}

func TestS3Uploader_PutError(t *testing.T) {
	u := NewS3Uploader(&mockS3Client{err: errors.New("access denied")}, "imgs", "us-east-1", "", zerolog.Nop())

	_, err := u.Upload(context.Background(), imageInput())
	assert.ErrorContains(t, err, "access denied")
}

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"kampuskitap/internal/config"
	"kampuskitap/internal/logging"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePresigner struct {
	input *s3.PutObjectInput
	err   error
}

func (f *fakePresigner) PresignPutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &v4.PresignedHTTPRequest{
		URL:    "https://s3.example.com/" + *params.Bucket + "/" + *params.Key + "?X-Amz-Signature=abc",
		Method: "PUT",
	}, nil
}

func newUploadService(p ObjectPresigner, cfg config.S3Config) *uploadService {
	svc := NewUploadService(p, cfg, logging.Discard()).(*uploadService)
	svc.now = func() time.Time { return time.Date(2025, 10, 3, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestUploadService_PresignImageUpload(t *testing.T) {
	presigner := &fakePresigner{}
	svc := newUploadService(presigner, config.S3Config{
		Bucket:    "kampuskitap",
		Region:    "eu-central-1",
		PublicURL: "https://cdn.kampuskitap.app",
	})

	upload, err := svc.PresignImageUpload(context.Background(), 7, "IMAGE/PNG")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(upload.Key, "products/7/2025/10/"))
	assert.True(t, strings.HasSuffix(upload.Key, ".png"))
	assert.Equal(t, "https://cdn.kampuskitap.app/"+upload.Key, upload.ImageURL)
	assert.Contains(t, upload.UploadURL, upload.Key)
	assert.Equal(t, time.Date(2025, 10, 3, 9, 15, 0, 0, time.UTC), upload.ExpiresAt)

	require.NotNil(t, presigner.input)
	assert.Equal(t, "kampuskitap", *presigner.input.Bucket)
	assert.Equal(t, "image/png", *presigner.input.ContentType)
}

func TestUploadService_PublicURLFallbacks(t *testing.T) {
	svc := newUploadService(&fakePresigner{}, config.S3Config{Bucket: "b", Region: "r", Endpoint: "http://minio:9000/"})
	assert.Equal(t, "http://minio:9000/b/k.jpg", svc.publicURL("k.jpg"))

	svc = newUploadService(&fakePresigner{}, config.S3Config{Bucket: "b", Region: "eu-west-1"})
	assert.Equal(t, "https://b.s3.eu-west-1.amazonaws.com/k.jpg", svc.publicURL("k.jpg"))
}

func TestUploadService_RejectsUnsupportedType(t *testing.T) {
	svc := newUploadService(&fakePresigner{}, config.S3Config{Bucket: "b", Region: "r"})

	_, err := svc.PresignImageUpload(context.Background(), 7, "application/pdf")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUploadService_Disabled(t *testing.T) {
	svc := newUploadService(nil, config.S3Config{})

	_, err := svc.PresignImageUpload(context.Background(), 7, "image/jpeg")
	assert.ErrorIs(t, err, ErrUploadsDisabled)
}

func TestUploadService_PresignError(t *testing.T) {
	svc := newUploadService(&fakePresigner{err: errors.New("boom")}, config.S3Config{Bucket: "b", Region: "r"})

	_, err := svc.PresignImageUpload(context.Background(), 7, "image/jpeg")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kampuskitap/internal/config"
	"kampuskitap/internal/logging"
	"kampuskitap/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const uploadURLExpiry = 15 * time.Minute

// allowedImageTypes maps accepted content types to object key extensions
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ObjectPresigner is satisfied by *s3.PresignClient
type ObjectPresigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// UploadService hands out presigned URLs for product images
type UploadService interface {
	PresignImageUpload(ctx context.Context, userID int, contentType string) (*model.ImageUpload, error)
}

type uploadService struct {
	presigner ObjectPresigner
	cfg       config.S3Config
	log       logging.Logger
	now       func() time.Time
}

// NewUploadService creates an UploadService. A nil presigner disables uploads.
func NewUploadService(presigner ObjectPresigner, cfg config.S3Config, log logging.Logger) UploadService {
	return &uploadService{presigner: presigner, cfg: cfg, log: log, now: time.Now}
}

// NewS3Presigner builds a presign client for the configured bucket. A custom
// endpoint (MinIO and friends) switches the client to path-style addressing.
func NewS3Presigner(ctx context.Context, cfg config.S3Config) (*s3.PresignClient, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return s3.NewPresignClient(client), nil
}

func (s *uploadService) PresignImageUpload(ctx context.Context, userID int, contentType string) (*model.ImageUpload, error) {
	if s.presigner == nil || !s.cfg.Enabled() {
		return nil, ErrUploadsDisabled
	}

	contentType = strings.ToLower(strings.TrimSpace(contentType))
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, invalid("unsupported image type, use image/jpeg, image/png or image/webp")
	}

	now := s.now()
	key := fmt.Sprintf("products/%d/%04d/%02d/%s%s", userID, now.Year(), int(now.Month()), uuid.New(), ext)

	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(uploadURLExpiry))
	if err != nil {
		return nil, fmt.Errorf("failed to presign image upload: %w", err)
	}

	s.log.Info(ctx, "image upload presigned", "user_id", userID, "key", key)
	return &model.ImageUpload{
		UploadURL: req.URL,
		ImageURL:  s.publicURL(key),
		Key:       key,
		ExpiresAt: now.Add(uploadURLExpiry),
	}, nil
}

func (s *uploadService) publicURL(key string) string {
	switch {
	case s.cfg.PublicURL != "":
		return s.cfg.PublicURL + "/" + key
	case s.cfg.Endpoint != "":
		return strings.TrimRight(s.cfg.Endpoint, "/") + "/" + s.cfg.Bucket + "/" + key
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
	}
}

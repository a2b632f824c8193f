package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// BlobStore hands out upload URLs for user media. The caller PUTs the
// payload itself; the object URL is what gets written into rows.
type BlobStore interface {
	PresignUpload(ctx context.Context, fileName, fileType string) (uploadURL, objectURL string, err error)
}

// S3Store presigns uploads against a single bucket.
type S3Store struct {
	presigner *s3.PresignClient
	bucket    string
	region    string
}

// NewS3Store builds an S3Store from the default AWS credential chain.
func NewS3Store(ctx context.Context, bucket, region string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &S3Store{
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		region:    region,
	}, nil
}

// PresignUpload returns a short-lived PUT URL plus the URL the object will
// be readable from once uploaded.
func (s *S3Store) PresignUpload(ctx context.Context, fileName, fileType string) (string, string, error) {
	key := "uploads/" + time.Now().Format("20060102150405") + "-" + fileName
	params := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}
	presigned, err := s.presigner.PresignPutObject(ctx, params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", "", err
	}
	objectURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	return presigned.URL, objectURL, nil
}

// Package s3 implements the image blob store on any S3-compatible
// object storage (AWS S3, Supabase Storage, MinIO).
package s3

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"recortes/internal/storage"
)

type Store struct {
	client     *awss3.Client
	bucket     string
	publicBase string
}

// New loads the default AWS SDK config and returns a store bound to the
// given bucket. endpoint overrides the S3 endpoint for S3-compatible
// providers; publicBase is the prefix public URLs are derived from.
func New(ctx context.Context, bucket, endpoint, publicBase string) (*Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := awss3.NewFromConfig(cfg, func(o *awss3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &Store{client: client, bucket: bucket, publicBase: publicBase}, nil
}

func (s *Store) Upload(ctx context.Context, objectName string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectName),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", objectName, err)
	}
	return nil
}

func (s *Store) PublicURL(objectName string) string {
	return storage.JoinPublicURL(s.publicBase, s.bucket, objectName)
}

func (s *Store) Remove(ctx context.Context, objectName string) error {
	_, err := s.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectName),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", objectName, err)
	}
	return nil
}

func (s *Store) ExtractObjectName(publicURL string) string {
	return storage.ObjectNameFromURL(s.bucket, publicURL)
}

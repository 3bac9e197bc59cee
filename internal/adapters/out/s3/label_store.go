// Package s3 stores label documents in an S3-compatible object store.
package s3

import (
	"bytes"
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"skybroker/internal/pkg/errs"
)

// s3API is the subset of the S3 client the store uses.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// LabelStore implements ports.LabelStore over an S3 bucket. Keys are owned
// by the label flow; the store never interprets them.
type LabelStore struct {
	client s3API
	bucket string
}

// NewLabelStore creates a label store writing to the given bucket.
func NewLabelStore(client s3API, bucket string) (*LabelStore, error) {
	if bucket == "" {
		return nil, errs.NewConfigurationError("label bucket")
	}
	return &LabelStore{client: client, bucket: bucket}, nil
}

// Put stores a label document, overwriting any previous object at the key.
func (s *LabelStore) Put(ctx context.Context, key string, content []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	return err
}

// Get retrieves a label document by key.
func (s *LabelStore) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used by S3Sink.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink writes each lead as its own JSON object, partitioned by day.
type S3Sink struct {
	client S3API
	bucket string
}

func NewS3Sink(client S3API, bucket string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket}
}

func (s *S3Sink) Name() string { return "s3" }

func (s *S3Sink) Deliver(ctx context.Context, lead Lead) (bool, error) {
	if s == nil || s.client == nil || s.bucket == "" {
		return false, nil
	}

	data, err := json.Marshal(lead)
	if err != nil {
		return false, fmt.Errorf("leads: marshal lead: %w", err)
	}

	key := objectKey(lead)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return false, fmt.Errorf("leads: s3 put %s: %w", key, err)
	}
	return true, nil
}

func objectKey(lead Lead) string {
	t := lead.CreatedAt.UTC()
	return fmt.Sprintf("leads/%d/%02d/%02d/%s.json", t.Year(), t.Month(), t.Day(), lead.ID)
}

package cloud

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Client exports dashboard snapshots to a bucket.
type S3Client struct {
	svc    s3API
	bucket string
}

func NewS3Client(ctx context.Context, region, bucket string) (*S3Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return &S3Client{
		svc:    s3.NewFromConfig(cfg),
		bucket: bucket,
	}, nil
}

// SnapshotKey partitions exports by day: snapshots/2024/05/01/<id>.json.
func SnapshotKey(acquiredAt time.Time, id string) string {
	return fmt.Sprintf("snapshots/%s/%s.json", acquiredAt.UTC().Format("2006/01/02"), id)
}

// UploadSnapshot stores a JSON-encoded snapshot under key.
func (c *S3Client) UploadSnapshot(ctx context.Context, key string, data []byte) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"uploaded-at": time.Now().Format(time.RFC3339),
		},
	}

	if _, err := c.svc.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload snapshot to S3: %w", err)
	}
	return nil
}

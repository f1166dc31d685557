package s3client

import (
	"context"
	"fmt"
	"strings"
)

type Client interface {
	PutObject(ctx context.Context, req *PutObjectRequest) error
}

type PutObjectRequest struct {
	Bucket      string
	Key         string
	Body        []byte
	ContentType string
}

// ParseS3URI parses an s3://bucket/key URI that names a single object
func ParseS3URI(uri string) (bucket, key string, err error) {
	if !strings.HasPrefix(uri, "s3://") {
		return "", "", fmt.Errorf("invalid S3 URI: must start with s3://")
	}

	path := strings.TrimPrefix(uri, "s3://")
	parts := strings.SplitN(path, "/", 2)

	bucket = parts[0]
	if bucket == "" {
		return "", "", fmt.Errorf("invalid S3 URI: missing bucket name")
	}
	if len(parts) < 2 || parts[1] == "" {
		return "", "", fmt.Errorf("invalid S3 URI: missing object key")
	}

	key = parts[1]
	if strings.HasSuffix(key, "/") {
		return "", "", fmt.Errorf("invalid S3 URI: object key must not end with /")
	}

	return bucket, key, nil
}

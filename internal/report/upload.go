package report

import (
	"context"
	"fmt"

	"github.com/yuya-takeyama/dupscan/pkg/s3client"
)

// Upload stores the JSON report at an s3://bucket/key URI
func Upload(ctx context.Context, client s3client.Client, uri string, r *Report) error {
	bucket, key, err := s3client.ParseS3URI(uri)
	if err != nil {
		return err
	}

	data, err := Marshal(r)
	if err != nil {
		return err
	}

	if err := client.PutObject(ctx, &s3client.PutObjectRequest{
		Bucket:      bucket,
		Key:         key,
		Body:        data,
		ContentType: "application/json",
	}); err != nil {
		return fmt.Errorf("upload report to %s: %w", uri, err)
	}

	return nil
}

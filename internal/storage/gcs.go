package storage

import (
	"context"
	"fmt"
	"strings"

	gcs "cloud.google.com/go/storage"
)

// GCSCommitter writes the audio/transcript pair into a Cloud Storage
// bucket under the dataset repository root.
type GCSCommitter struct {
	client *gcs.Client
	bucket string
	root   string
}

func NewGCSCommitter(ctx context.Context, bucket string, root string) (*GCSCommitter, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSCommitter{client: client, bucket: bucket, root: strings.Trim(root, "/")}, nil
}

func (c *GCSCommitter) Close() error { return c.client.Close() }

// Commit uploads both objects. The pair is only considered committed when
// both writes succeed; a failed transcript write leaves the attempt
// retryable by the caller.
func (c *GCSCommitter) Commit(ctx context.Context, audioKey string, wav []byte, transcriptKey string, transcript string) error {
	if err := c.upload(ctx, c.objectName(audioKey), "audio/wav", wav); err != nil {
		return fmt.Errorf("audio upload failed: %w", err)
	}
	if err := c.upload(ctx, c.objectName(transcriptKey), "text/plain; charset=utf-8", []byte(transcript)); err != nil {
		return fmt.Errorf("transcript upload failed: %w", err)
	}
	return nil
}

func (c *GCSCommitter) upload(ctx context.Context, objectName string, contentType string, payload []byte) error {
	w := c.client.Bucket(c.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(payload); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func (c *GCSCommitter) objectName(key string) string {
	if c.root == "" {
		return key
	}
	return c.root + "/" + key
}

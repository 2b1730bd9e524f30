package port

import (
	"context"
	"io"
)

// UploadInput describes an object to be written to storage.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// UploadOutput contains the result of a successful upload.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage abstracts the bucket that archived scan images live in.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Delete(ctx context.Context, bucket, key string) error
	// GetPresignedURL returns a time-limited GET URL for an object.
	GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error)
}

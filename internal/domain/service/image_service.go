package service

import (
	"context"
)

// ImageFile is a locally received image that has not been persisted to object
// storage yet (a "pending" image in the draft engine).
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ImageUploader persists a batch of image files and returns their public URLs
// in the same order as the input, one URL per file. Implementations may fail
// as a whole; they never return a partial URL list on error.
type ImageUploader interface {
	UploadImages(ctx context.Context, files []ImageFile) ([]string, error)
	Close() error
}

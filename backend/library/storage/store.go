package storage

import (
	"context"
	"path/filepath"

	apperrors "media-uploader/backend/common/errors"

	"github.com/google/uuid"
)

// UploadResult carries the public URL of a stored object and the opaque key
// needed to destroy it later.
type UploadResult struct {
	URL string
	Key string
}

// ObjectStore is the port to the remote binary-object host.
type ObjectStore interface {
	Upload(ctx context.Context, key string, contentType string, data []byte) (UploadResult, error)
	Destroy(ctx context.Context, key string) error
}

var active ObjectStore

// Configure installs the process-wide object store.
func Configure(store ObjectStore) {
	active = store
}

// Active returns the configured store or an error when uploads are disabled.
func Active() (ObjectStore, error) {
	if active == nil {
		return nil, apperrors.New(apperrors.ErrRemoteStore, "object store is not configured")
	}
	return active, nil
}

// ObjectKey derives a unique object key that keeps the original extension.
func ObjectKey(filename string) string {
	return uuid.New().String() + filepath.Ext(filename)
}

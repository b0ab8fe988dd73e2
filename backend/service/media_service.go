package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"media-uploader/backend/common"
	apperrors "media-uploader/backend/common/errors"
	"media-uploader/backend/library/archive"
	"media-uploader/backend/library/storage"
	"media-uploader/backend/model"
)

// UploadRequest carries one fully-read file and its metadata.
type UploadRequest struct {
	Filename    string
	ContentType string
	UploadedBy  string
	Description string
	Data        []byte
}

// UploadMedia sends the content to the remote store and records it in the
// catalog. A failed catalog insert destroys the just-uploaded object so the
// remote store does not leak.
func UploadMedia(ctx context.Context, req UploadRequest) (*model.Media, error) {
	store, err := storage.Active()
	if err != nil {
		return nil, err
	}

	key := storage.ObjectKey(req.Filename)
	result, err := store.Upload(ctx, key, req.ContentType, req.Data)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrRemoteStore, "upload failed")
	}

	media := &model.Media{
		Filename:    req.Filename,
		URL:         result.URL,
		PublicID:    result.Key,
		IsVisible:   true,
		UploadedBy:  req.UploadedBy,
		Description: req.Description,
		Size:        int64(len(req.Data)),
		Mimetype:    req.ContentType,
	}
	if err := media.Insert(); err != nil {
		if destroyErr := store.Destroy(ctx, result.Key); destroyErr != nil {
			common.SysError("failed to clean up remote object " + result.Key + ": " + destroyErr.Error())
		}
		return nil, apperrors.Wrap(err, apperrors.ErrInternalServer, "failed to save media record")
	}

	return media, nil
}

// DeleteMedia destroys the remote object first and only then removes the
// catalog row. When the remote destroy fails the row is kept so the catalog
// never references an object we cannot reach anymore while the object still
// exists.
func DeleteMedia(ctx context.Context, id int64) error {
	media, err := model.GetMediaById(id)
	if err != nil {
		return err
	}

	store, err := storage.Active()
	if err != nil {
		return err
	}
	if err := store.Destroy(ctx, media.PublicID); err != nil {
		return apperrors.Wrap(err, apperrors.ErrRemoteStore, "remote delete failed")
	}

	return media.Delete()
}

// BulkDeleteMedia deletes every listed row, continuing past failures. Missing
// ids are skipped silently; ids whose deletion failed are returned.
func BulkDeleteMedia(ctx context.Context, ids []int64) []int64 {
	var failed []int64
	for _, id := range ids {
		if err := DeleteMedia(ctx, id); err != nil {
			if apperrors.IsNotFound(err) {
				continue
			}
			common.SysError(fmt.Sprintf("bulk delete of media %d failed: %s", id, err.Error()))
			failed = append(failed, id)
		}
	}
	return failed
}

var fetchClient = &http.Client{Timeout: 30 * time.Second}

// FetchURL retrieves the content behind a media item's public URL. Var so
// tests can stub the network.
var FetchURL = func(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := fetchClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// BuildSelectedArchive fetches the listed media items and packs them into one
// ZIP archive. Missing ids are skipped; a failed fetch fails the whole
// request rather than emitting a truncated archive.
func BuildSelectedArchive(ctx context.Context, ids []int64) ([]byte, error) {
	var items []archive.Item
	for _, id := range ids {
		media, err := model.GetMediaById(id)
		if err != nil {
			if apperrors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		data, err := FetchURL(ctx, media.URL)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrRemoteStore, "failed to fetch "+media.Filename)
		}
		items = append(items, archive.Item{Name: media.Filename, Data: data})
	}
	return archive.Build(items)
}

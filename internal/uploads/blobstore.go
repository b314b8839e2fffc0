package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// ErrObjectNotFound marks a blob that does not (yet) exist. The thumbnail
// poller treats it as "keep waiting"; everything else treats it as final.
var ErrObjectNotFound = errors.New("object not found")

// BlobStore is the slice of the storage bucket the pipeline needs.
type BlobStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) error
	DownloadURL(ctx context.Context, objectPath string) (string, error)
	Delete(ctx context.Context, objectPath string) error
}

// BucketStore implements BlobStore over a Cloud Storage bucket obtained
// from the Firebase app.
type BucketStore struct {
	bucket *storage.BucketHandle
}

func NewBucketStore(bucket *storage.BucketHandle) *BucketStore {
	return &BucketStore{bucket: bucket}
}

func (s *BucketStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) error {
	w := s.bucket.Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("write object %s: %w", objectPath, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close object %s: %w", objectPath, err)
	}
	return nil
}

func (s *BucketStore) DownloadURL(ctx context.Context, objectPath string) (string, error) {
	attrs, err := s.bucket.Object(objectPath).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return "", ErrObjectNotFound
	}
	if err != nil {
		return "", fmt.Errorf("object attrs %s: %w", objectPath, err)
	}
	return attrs.MediaLink, nil
}

// Delete removes the object; deleting an absent object is not an error.
func (s *BucketStore) Delete(ctx context.Context, objectPath string) error {
	err := s.bucket.Object(objectPath).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete object %s: %w", objectPath, err)
	}
	return nil
}

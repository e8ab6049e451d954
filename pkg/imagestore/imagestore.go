package imagestore

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// UploadResult describes a stored image: the public URL clients can embed and
// the asset ID needed to destroy the object later. Both are always returned
// together.
type UploadResult struct {
	URL     string
	AssetID string
}

// Store is the interface for image hosting operations
type Store interface {
	Upload(ctx context.Context, file io.Reader, filename string) (*UploadResult, error)
	Destroy(ctx context.Context, assetID string) error
}

// FirebaseStore implements Store on top of a Firebase Cloud Storage bucket
type FirebaseStore struct {
	bucket     *storage.BucketHandle
	bucketName string
}

// NewFirebaseStore creates a new FirebaseStore
func NewFirebaseStore(bucket *storage.BucketHandle, bucketName string) *FirebaseStore {
	return &FirebaseStore{bucket: bucket, bucketName: bucketName}
}

// Upload stores the file in the bucket under a unique object name and makes it
// publicly readable
func (s *FirebaseStore) Upload(ctx context.Context, file io.Reader, filename string) (*UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	objectName := fmt.Sprintf("campgrounds/%s-%s%s",
		time.Now().Format("20060102"),
		uuid.New().String(),
		ext,
	)

	obj := s.bucket.Object(objectName)
	w := obj.NewWriter(ctx)
	if _, err := io.Copy(w, file); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to write image to storage: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize image upload: %w", err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return nil, fmt.Errorf("failed to make image public: %w", err)
	}

	return &UploadResult{
		URL:     fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, objectName),
		AssetID: objectName,
	}, nil
}

// Destroy removes the object from the bucket
func (s *FirebaseStore) Destroy(ctx context.Context, assetID string) error {
	if err := s.bucket.Object(assetID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete image asset %s: %w", assetID, err)
	}
	return nil
}

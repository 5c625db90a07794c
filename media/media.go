// Package media stores uploaded evidence files. Production uses Cloudinary;
// local development writes to a directory on disk.
package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Upload is the stored file's address.
type Upload struct {
	URL      string
	PublicID string
}

// Uploader stores an evidence file and returns where it lives.
type Uploader interface {
	Upload(ctx context.Context, name string, r io.Reader) (*Upload, error)
	Delete(ctx context.Context, publicID string) error
}

// DirUploader is the local filesystem implementation, used when no
// Cloudinary credentials are configured.
type DirUploader struct {
	dir     string
	baseURL string
}

// NewDirUploader stores files under dir and addresses them below baseURL.
func NewDirUploader(dir, baseURL string) (*DirUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("media: create upload dir: %w", err)
	}
	return &DirUploader{dir: dir, baseURL: baseURL}, nil
}

// Upload implements Uploader.
func (d *DirUploader) Upload(_ context.Context, name string, r io.Reader) (*Upload, error) {
	id := primitive.NewObjectID().Hex() + "-" + filepath.Base(name)
	path := filepath.Join(d.dir, id)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("media: create file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return nil, fmt.Errorf("media: write file: %w", err)
	}

	return &Upload{URL: d.baseURL + "/" + id, PublicID: id}, nil
}

// Delete implements Uploader.
func (d *DirUploader) Delete(_ context.Context, publicID string) error {
	err := os.Remove(filepath.Join(d.dir, filepath.Base(publicID)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

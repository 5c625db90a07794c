package media

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const uploadFolder = "cla-portal/evidence"

// CloudinaryUploader stores evidence files in Cloudinary.
type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryUploader initializes the Cloudinary client from credentials.
func NewCloudinaryUploader(cloudName, apiKey, apiSecret string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("media: initialize cloudinary: %w", err)
	}
	return &CloudinaryUploader{cld: cld}, nil
}

// Upload implements Uploader.
func (c *CloudinaryUploader) Upload(ctx context.Context, name string, r io.Reader) (*Upload, error) {
	fileBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("media: read file: %w", err)
	}

	result, err := c.cld.Upload.Upload(ctx, fileBytes, uploader.UploadParams{
		Folder:       uploadFolder,
		ResourceType: "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("media: upload %q: %w", name, err)
	}
	return &Upload{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

// Delete implements Uploader.
func (c *CloudinaryUploader) Delete(ctx context.Context, publicID string) error {
	_, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("media: destroy %q: %w", publicID, err)
	}
	return nil
}

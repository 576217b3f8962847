package config

import (
	"context"
	"fmt"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var cld *cloudinary.Cloudinary

// InitCloudinary sets up the image-hosting client from the environment.
func InitCloudinary() error {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return fmt.Errorf("cloudinary configuration missing")
	}

	c, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return fmt.Errorf("failed to init cloudinary: %w", err)
	}
	cld = c
	return nil
}

// UploadImage uploads a file to the given folder and returns the hosted URL
// together with the storage identifier needed for later deletion.
func UploadImage(ctx context.Context, file interface{}, folder string) (url, publicID string, err error) {
	if cld == nil {
		return "", "", fmt.Errorf("cloudinary not initialised")
	}
	resp, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", "", err
	}
	return resp.SecureURL, resp.PublicID, nil
}

// DestroyImage removes a hosted image by its storage identifier.
func DestroyImage(ctx context.Context, publicID string) error {
	if cld == nil {
		return fmt.Errorf("cloudinary not initialised")
	}
	_, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/MassBabyGeek/SnapQuest-backend/internal/config"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const submissionFolder = "snapquest/submissions"

// CloudinaryService handles all Cloudinary operations
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryService creates a new Cloudinary service instance
func NewCloudinaryService(cfg *config.Config) (*CloudinaryService, error) {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary configuration is missing")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryService{
		cld: cld,
	}, nil
}

// UploadSubmissionImage stocke la photo d'une soumission acceptée.
// Seules les photos qui ont passé tout le pipeline de validation arrivent ici.
func (s *CloudinaryService) UploadSubmissionImage(ctx context.Context, image []byte, submissionID string) (string, error) {
	overwrite := true

	uploadResult, err := s.cld.Upload.Upload(ctx, bytes.NewReader(image), uploader.UploadParams{
		PublicID:     submissionID,
		Folder:       submissionFolder,
		Overwrite:    &overwrite,
		ResourceType: "image",
		Format:       "jpg",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}

	return uploadResult.SecureURL, nil
}

// DeleteSubmissionImage supprime la photo d'une soumission : soumission
// soft-deletée, ou nettoyage quand la persistance échoue après l'upload
func (s *CloudinaryService) DeleteSubmissionImage(ctx context.Context, submissionID string) error {
	return s.deleteImage(ctx, fmt.Sprintf("%s/%s", submissionFolder, submissionID))
}

func (s *CloudinaryService) deleteImage(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}

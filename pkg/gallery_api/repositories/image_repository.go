package repositories

import (
	"context"

	"github.com/promptframe/promptframe-api/pkg/gallery_api/models"
	"gorm.io/gorm"
)

// ImageRepository defines the persistence operations for image records.
type ImageRepository interface {
	Save(ctx context.Context, img *models.ImageGeneration) error
	GetImages(ctx context.Context) ([]models.ImageGeneration, error)
}

type imageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

// Save inserts a new record. Id and CreatedAt are assigned on insert; the
// passed struct is updated in place.
func (r *imageRepository) Save(ctx context.Context, img *models.ImageGeneration) error {
	return r.db.WithContext(ctx).Create(img).Error
}

// GetImages returns all records, newest first.
func (r *imageRepository) GetImages(ctx context.Context) ([]models.ImageGeneration, error) {
	var images []models.ImageGeneration
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImageGeneration is the metadata row for one generated image. Rows are
// immutable after creation; there is no update or delete path.
type ImageGeneration struct {
	Id          string    `json:"id" gorm:"column:id;primaryKey"`
	Prompt      string    `json:"prompt" gorm:"not null"`
	ImageUrl    string    `json:"image_url" gorm:"column:image_url;not null"`
	StoragePath string    `json:"storage_path" gorm:"column:storage_path;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (ImageGeneration) TableName() string {
	return "image_generations"
}

// BeforeCreate assigns an id if none is set.
func (i *ImageGeneration) BeforeCreate(tx *gorm.DB) error {
	if i.Id == "" {
		i.Id = uuid.NewString()
	}
	return nil
}

// GenerateImageInput is the POST /images request body.
type GenerateImageInput struct {
	Prompt string `json:"prompt"`
}

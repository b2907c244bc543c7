package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GalleryImage is an admin-uploaded scanner preview image. The wizard core
// only ever sees the URL string.
type GalleryImage struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string         `gorm:"column:title" json:"title"`
	StorageKey string         `gorm:"column:storage_key;not null" json:"storage_key"`
	URL        string         `gorm:"column:url;not null" json:"url"`
	Position   int            `gorm:"column:position;not null;default:0" json:"position"`
	UploadedBy uuid.UUID      `gorm:"type:uuid;not null" json:"uploaded_by"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (GalleryImage) TableName() string { return "gallery_image" }

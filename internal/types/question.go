package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question is the admin-authored wizard question definition. Details holds
// the type-specific configuration (placeholder token, boolean fragments or
// multiple-choice options) as jsonb in the wizard engine's wire shape.
type Question struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Position  int            `gorm:"column:position;not null;index" json:"position"`
	Text      string         `gorm:"column:text;not null" json:"text"`
	Type      string         `gorm:"column:type;not null" json:"type"`
	Details   datatypes.JSON `gorm:"column:details;type:jsonb" json:"details"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Question) TableName() string { return "question" }

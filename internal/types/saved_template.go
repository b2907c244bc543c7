package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SavedTemplate is a named snapshot of a wizard session: the answer map and
// the assembled code at save time. Name is a natural key per user; saving
// again under the same name replaces the prior snapshot. Code is a cached
// value, never recomputed on load.
type SavedTemplate struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Name       string         `gorm:"column:name;not null;index" json:"name"`
	Answers    datatypes.JSON `gorm:"column:answers;type:jsonb" json:"answers"`
	Code       string         `gorm:"column:code;type:text" json:"code"`
	IsComplete bool           `gorm:"column:is_complete;not null;default:false" json:"is_complete"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (SavedTemplate) TableName() string { return "saved_template" }

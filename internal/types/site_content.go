package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SiteContent is a keyed content record maintained on the admin surface.
// Well-known keys: base_template, full_template, banner.
type SiteContent struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Key       string         `gorm:"column:key;uniqueIndex;not null" json:"key"`
	Value     string         `gorm:"column:value;type:text" json:"value"`
	UpdatedBy *uuid.UUID     `gorm:"type:uuid" json:"updated_by,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (SiteContent) TableName() string { return "site_content" }

const (
	ContentKeyBaseTemplate = "base_template"
	ContentKeyFullTemplate = "full_template"
	ContentKeyBanner       = "banner"
)

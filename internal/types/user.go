package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string         `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Password    string         `gorm:"column:password;not null" json:"-"`
	FirstName   string         `gorm:"column:first_name;not null" json:"first_name"`
	LastName    string         `gorm:"column:last_name;not null" json:"last_name"`
	Role        string         `gorm:"column:role;not null;default:'user'" json:"role"`
	IsOwner     bool           `gorm:"column:is_owner;not null;default:false" json:"is_owner"`
	Permissions datatypes.JSON `gorm:"column:permissions;type:jsonb" json:"permissions"`
	AvatarURL   string         `gorm:"column:avatar_url" json:"avatar_url"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }

package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type User struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	Email       string            `gorm:"not null;uniqueIndex" json:"email"`
	Name        string            `gorm:"not null" json:"name"`
	LastLoginAt time.Time         `gorm:"index" json:"last_login_at"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

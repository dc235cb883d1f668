package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Order struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	UserID      snowflake.ID      `gorm:"not null;index" json:"user_id"`
	TotalAmount float64           `gorm:"not null" json:"total_amount"`
	Status      string            `gorm:"not null;default:'completed'" json:"status"`
	OrderedAt   time.Time         `gorm:"not null;index" json:"ordered_at"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

package db

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	ID          uint           `gorm:"primaryKey"`
	RecipientID uint           `gorm:"index;not null"`
	ActorID     uint           `gorm:"not null"`
	EventType   string         `gorm:"size:64;not null"`
	Message     string         `gorm:"size:280;not null"`
	Payload     datatypes.JSON `gorm:"type:jsonb"`
	ReadAt      *time.Time
	CreatedAt   time.Time `gorm:"not null"`
}

package db

import "time"

// PointEntry is the audit trail behind every global balance change.
type PointEntry struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Amount    int       `gorm:"not null"`
	Reason    string    `gorm:"size:64;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

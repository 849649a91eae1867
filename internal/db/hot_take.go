package db

import "time"

// HotTake is a one-line opinion users vote fire (+1) or ice (-1) on.
// Score caches the signed sum of live reaction rows.
type HotTake struct {
	ID        uint      `gorm:"primaryKey"`
	AuthorID  uint      `gorm:"index;not null"`
	Take      string    `gorm:"size:280;not null"`
	Score     int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

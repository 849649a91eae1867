package db

import "time"

const (
	TargetPost    = "post"
	TargetComment = "comment"
	TargetHotTake = "hot_take"
)

// Reaction is the single row per (target, user) pair behind likes, comment
// votes, and fire/ice votes. Value is +1 for likes; +1 or -1 for signed votes.
type Reaction struct {
	ID         uint      `gorm:"primaryKey"`
	TargetKind string    `gorm:"size:32;not null;uniqueIndex:idx_reactions_target_user"`
	TargetID   uint      `gorm:"not null;uniqueIndex:idx_reactions_target_user"`
	UserID     uint      `gorm:"index;not null;uniqueIndex:idx_reactions_target_user"`
	Value      int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

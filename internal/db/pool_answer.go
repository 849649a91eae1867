package db

import "time"

type PoolAnswer struct {
	ID           uint      `gorm:"primaryKey"`
	PromptID     uint      `gorm:"index;not null;uniqueIndex:idx_pool_answers_prompt_user"`
	UserID       uint      `gorm:"index;not null;uniqueIndex:idx_pool_answers_prompt_user"`
	Text         string    `gorm:"size:280;not null"`
	IsCorrect    *bool     `gorm:"index"`
	PointsEarned int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

package db

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey"`
	PostID    uint      `gorm:"index;not null"`
	AuthorID  uint      `gorm:"index;not null"`
	ParentID  *uint     `gorm:"index"`
	Body      string    `gorm:"size:500;not null"`
	VoteScore int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

package db

import "time"

type Post struct {
	ID         uint      `gorm:"primaryKey"`
	AuthorID   uint      `gorm:"index;not null"`
	Body       string    `gorm:"size:500;not null"`
	LikesCount int       `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
	Comments   []Comment
}

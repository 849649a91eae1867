package db

import "time"

const (
	PoolStatusOpen      = "open"
	PoolStatusCompleted = "completed"

	PoolVisibilityPublic  = "public"
	PoolVisibilityPrivate = "private"
)

type Pool struct {
	ID              uint       `gorm:"primaryKey"`
	Name            string     `gorm:"size:120;not null"`
	Description     string     `gorm:"size:500;not null;default:''"`
	HostID          uint       `gorm:"index;not null"`
	InviteCode      string     `gorm:"size:12;uniqueIndex;not null"`
	Visibility      string     `gorm:"size:16;not null;default:'private'"`
	Status          string     `gorm:"size:16;not null;default:'open'"`
	PointsPerAnswer int        `gorm:"not null;default:10"`
	Deadline        *time.Time `gorm:"index"`
	CreatedAt       time.Time  `gorm:"not null"`
	UpdatedAt       time.Time  `gorm:"not null"`
	Members         []PoolMember
	Prompts         []PoolPrompt
}

package db

import (
	"time"

	"gorm.io/datatypes"
)

const (
	PromptStatusOpen     = "open"
	PromptStatusResolved = "resolved"

	PromptTypePrediction  = "prediction"
	PromptTypeMultiChoice = "multi_choice"
)

type PoolPrompt struct {
	ID            uint           `gorm:"primaryKey"`
	PoolID        uint           `gorm:"index;not null"`
	CreatorID     uint           `gorm:"index;not null"`
	Text          string         `gorm:"size:280;not null"`
	PromptType    string         `gorm:"size:32;not null;default:'prediction'"`
	Options       datatypes.JSON `gorm:"type:jsonb"`
	Points        int            `gorm:"not null;default:10"`
	Deadline      *time.Time     `gorm:"index"`
	Status        string         `gorm:"size:16;not null;default:'open'"`
	CorrectAnswer *string        `gorm:"size:280"`
	ResolvedAt    *time.Time
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
	Answers       []PoolAnswer `gorm:"foreignKey:PromptID"`
}

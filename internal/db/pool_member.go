package db

import "time"

const (
	RoleHost   = "host"
	RoleMember = "member"
)

type PoolMember struct {
	ID        uint      `gorm:"primaryKey"`
	PoolID    uint      `gorm:"index;not null;uniqueIndex:idx_pool_members_pool_user"`
	UserID    uint      `gorm:"index;not null;uniqueIndex:idx_pool_members_pool_user"`
	Role      string    `gorm:"size:16;not null;default:'member'"`
	Points    int       `gorm:"not null;default:0"`
	JoinedAt  time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

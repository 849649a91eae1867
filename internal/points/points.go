// Package points owns the global, cross-pool point balance. Every flow that
// grants points (resolution winnings, vote rewards, daily challenges) goes
// through Credit so the atomicity and audit trail live in one place.
package points

import (
	"context"
	"errors"

	"couchclub/internal/db"

	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(conn *gorm.DB) *Service {
	return &Service{db: conn}
}

// Credit adds amount to the user's global balance and records an audit entry.
// The balance moves through a single increment expression, never a
// read-then-write, so concurrent credits cannot clobber each other.
func (s *Service) Credit(ctx context.Context, userID uint, amount int, reason string) error {
	if amount == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&db.User{}).
			Where("id = ?", userID).
			UpdateColumn("points", gorm.Expr("points + ?", amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.New("user not found")
		}
		entry := db.PointEntry{UserID: userID, Amount: amount, Reason: reason}
		return tx.Create(&entry).Error
	})
}

// Balance returns the user's current global point total.
func (s *Service) Balance(ctx context.Context, userID uint) (int64, error) {
	var user db.User
	if err := s.db.WithContext(ctx).Select("id", "points").First(&user, userID).Error; err != nil {
		return 0, err
	}
	return user.Points, nil
}

package pools

import (
	"context"
	"errors"
	"fmt"
	"log"

	"couchclub/internal/db"
	"couchclub/internal/errs"
	"couchclub/internal/notify"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreatePoolInput struct {
	Name            string
	Description     string
	Visibility      string
	PointsPerAnswer int
}

// CreatePool creates a pool and its host membership in one transaction. The
// invite code is sampled from an unambiguous alphabet and regenerated on
// collision a bounded number of times before the whole request fails.
func (s *Service) CreatePool(ctx context.Context, hostID uint, input CreatePoolInput) (*db.Pool, error) {
	name, err := validatePoolName(input.Name)
	if err != nil {
		return nil, err
	}
	description, err := validateDescription(input.Description)
	if err != nil {
		return nil, err
	}
	visibility, err := validateVisibility(input.Visibility)
	if err != nil {
		return nil, err
	}
	pointsPerAnswer := input.PointsPerAnswer
	if pointsPerAnswer <= 0 {
		pointsPerAnswer = s.defaultPoints
	}

	var pool db.Pool
	for attempt := 0; attempt < s.codeAttempts; attempt++ {
		code, err := newInviteCode()
		if err != nil {
			return nil, err
		}
		pool = db.Pool{
			Name:            name,
			Description:     description,
			HostID:          hostID,
			InviteCode:      code,
			Visibility:      visibility,
			Status:          db.PoolStatusOpen,
			PointsPerAnswer: pointsPerAnswer,
		}
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&pool).Error; err != nil {
				return err
			}
			member := db.PoolMember{
				PoolID:   pool.ID,
				UserID:   hostID,
				Role:     db.RoleHost,
				JoinedAt: s.now(),
			}
			return tx.Create(&member).Error
		})
		if err == nil {
			return &pool, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("invite code collision code=%s attempt=%d", code, attempt+1)
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("%w: could not generate a unique invite code", errs.ErrConflict)
}

type JoinResult struct {
	Pool          *db.Pool
	AlreadyMember bool
}

// JoinPool adds the user to the pool behind an invite code. Joining a pool
// the user already belongs to succeeds with AlreadyMember set; the
// duplicate-join race is absorbed by the (pool, user) unique index.
func (s *Service) JoinPool(ctx context.Context, userID uint, code string) (JoinResult, error) {
	normalized := normalizeInviteCode(code)
	if normalized == "" {
		return JoinResult{}, fmt.Errorf("%w: invite code is required", errs.ErrValidation)
	}

	var pool db.Pool
	if err := s.db.WithContext(ctx).Where("invite_code = ?", normalized).Take(&pool).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return JoinResult{}, fmt.Errorf("%w: no pool for invite code", errs.ErrNotFound)
		}
		return JoinResult{}, err
	}
	if pool.Status != db.PoolStatusOpen {
		return JoinResult{}, fmt.Errorf("%w: pool is no longer accepting members", errs.ErrClosed)
	}

	member := db.PoolMember{
		PoolID:   pool.ID,
		UserID:   userID,
		Role:     db.RoleMember,
		JoinedAt: s.now(),
	}
	insert := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pool_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&member)
	if insert.Error != nil {
		return JoinResult{}, insert.Error
	}
	already := insert.RowsAffected == 0
	if !already {
		log.Printf("pool joined pool_id=%d user_id=%d", pool.ID, userID)
		s.dispatcher.Dispatch(pool.HostID, "pool_member_joined", userID, "joined your pool", notify.PoolRef(pool.ID))
	}
	return JoinResult{Pool: &pool, AlreadyMember: already}, nil
}

// ClosePool flips an open pool to completed. Host only, one way.
func (s *Service) ClosePool(ctx context.Context, hostID, poolID uint) error {
	pool, err := s.getPool(ctx, poolID)
	if err != nil {
		return err
	}
	if pool.HostID != hostID {
		return fmt.Errorf("%w: only the host can close a pool", errs.ErrForbidden)
	}
	result := s.db.WithContext(ctx).Model(&db.Pool{}).
		Where("id = ? AND status = ?", poolID, db.PoolStatusOpen).
		Update("status", db.PoolStatusCompleted)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: pool is already completed", errs.ErrInvalidState)
	}
	log.Printf("pool closed pool_id=%d host_id=%d", poolID, hostID)
	return nil
}

// GetPool returns a pool the requester is allowed to see: any public pool,
// or a private pool they belong to.
func (s *Service) GetPool(ctx context.Context, requesterID, poolID uint) (*db.Pool, error) {
	pool, err := s.getPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if pool.Visibility != db.PoolVisibilityPublic {
		member, err := s.isMember(ctx, poolID, requesterID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, fmt.Errorf("%w: pool is private", errs.ErrForbidden)
		}
	}
	return pool, nil
}

// ListPools returns the pools the user belongs to plus public pools,
// newest first.
func (s *Service) ListPools(ctx context.Context, userID uint) ([]db.Pool, error) {
	var pools []db.Pool
	err := s.db.WithContext(ctx).
		Where("visibility = ? OR id IN (?)",
			db.PoolVisibilityPublic,
			s.db.Model(&db.PoolMember{}).Select("pool_id").Where("user_id = ?", userID),
		).
		Order("created_at DESC, id DESC").
		Find(&pools).Error
	return pools, err
}

func (s *Service) getPool(ctx context.Context, poolID uint) (*db.Pool, error) {
	var pool db.Pool
	if err := s.db.WithContext(ctx).Take(&pool, poolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: pool %d", errs.ErrNotFound, poolID)
		}
		return nil, err
	}
	return &pool, nil
}

func (s *Service) isMember(ctx context.Context, poolID, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&db.PoolMember{}).
		Where("pool_id = ? AND user_id = ?", poolID, userID).
		Count(&count).Error
	return count > 0, err
}

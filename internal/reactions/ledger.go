// Package reactions keeps per-target reaction counts consistent with the
// reaction rows behind them. One row exists per (target, user) pair; the
// cached counter on the target always equals the count or signed sum of live
// rows. Row and counter move together inside one transaction, and the counter
// only ever changes through a single increment expression.
package reactions

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"couchclub/internal/db"
	"couchclub/internal/errs"
	"couchclub/internal/notify"
	"couchclub/internal/points"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Action string

const (
	ActionAdded     Action = "added"
	ActionSwitched  Action = "switched"
	ActionUnchanged Action = "unchanged"
	ActionRemoved   Action = "removed"
)

type Result struct {
	Action   Action `json:"action"`
	NewCount int    `json:"new_count"`
}

// targetSpec describes how a reaction kind maps onto its counted target.
// Signed kinds accept +1/-1 and cache a sum; unsigned kinds are presence-only
// likes and cache a count floored at zero.
type targetSpec struct {
	table   string
	column  string
	signed  bool
	event   string
	message string
}

var targetSpecs = map[string]targetSpec{
	db.TargetPost: {
		table:   "posts",
		column:  "likes_count",
		signed:  false,
		event:   "post_liked",
		message: "liked your post",
	},
	db.TargetComment: {
		table:   "comments",
		column:  "vote_score",
		signed:  true,
		event:   "comment_voted",
		message: "voted on your comment",
	},
	db.TargetHotTake: {
		table:   "hot_takes",
		column:  "score",
		signed:  true,
		event:   "hot_take_voted",
		message: "rated your hot take",
	},
}

type Ledger struct {
	db         *gorm.DB
	dispatcher *notify.Dispatcher
	points     *points.Service
	voteReward int
}

func NewLedger(conn *gorm.DB, dispatcher *notify.Dispatcher, pointsSvc *points.Service, voteReward int) *Ledger {
	return &Ledger{db: conn, dispatcher: dispatcher, points: pointsSvc, voteReward: voteReward}
}

// decide computes the action and counter delta for a toggle against the
// caller's existing reaction value, if any. Identical retoggles are no-ops so
// retried requests never double-count.
func decide(existing *int, value int) (Action, int) {
	if existing == nil {
		return ActionAdded, value
	}
	if *existing == value {
		return ActionUnchanged, 0
	}
	return ActionSwitched, value - *existing
}

func normalizeValue(spec targetSpec, value int) (int, error) {
	if !spec.signed {
		return 1, nil
	}
	if value != 1 && value != -1 {
		return 0, fmt.Errorf("%w: reaction value must be +1 or -1", errs.ErrValidation)
	}
	return value, nil
}

type targetRow struct {
	ID       uint
	AuthorID uint
}

// Toggle records the user's reaction to a target: inserts when absent,
// switches a signed reaction to the new value, and leaves an identical
// reaction untouched. The counter adjustment and the row write commit
// atomically.
func (l *Ledger) Toggle(ctx context.Context, kind string, targetID, userID uint, value int) (Result, error) {
	spec, ok := targetSpecs[kind]
	if !ok {
		return Result{}, fmt.Errorf("%w: unknown target kind %q", errs.ErrValidation, kind)
	}
	value, err := normalizeValue(spec, value)
	if err != nil {
		return Result{}, err
	}

	var (
		result Result
		target targetRow
	)
	err = l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(spec.table).Select("id", "author_id").Where("id = ?", targetID).Take(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s %d", errs.ErrNotFound, kind, targetID)
			}
			return err
		}

		row := db.Reaction{TargetKind: kind, TargetID: targetID, UserID: userID, Value: value}
		insert := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "target_kind"}, {Name: "target_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(&row)
		if insert.Error != nil {
			return insert.Error
		}

		action, delta := ActionAdded, value
		if insert.RowsAffected == 0 {
			// Lost the insert race or the row predates this call; lock it
			// and decide against its current value.
			var existing db.Reaction
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("target_kind = ? AND target_id = ? AND user_id = ?", kind, targetID, userID).
				Take(&existing).Error; err != nil {
				return err
			}
			action, delta = decide(&existing.Value, value)
			if action == ActionSwitched {
				if err := tx.Model(&db.Reaction{}).
					Where("id = ?", existing.ID).
					Update("value", value).Error; err != nil {
					return err
				}
			}
		}

		if delta != 0 {
			if err := tx.Table(spec.table).
				Where("id = ?", targetID).
				UpdateColumn(spec.column, gorm.Expr(spec.column+" + ?", delta)).Error; err != nil {
				return err
			}
		}

		count, err := readCount(tx, spec, targetID)
		if err != nil {
			return err
		}
		result = Result{Action: action, NewCount: count}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	if result.Action == ActionAdded {
		l.dispatcher.Dispatch(target.AuthorID, spec.event, userID, spec.message, notify.TargetRef{Kind: kind, ID: targetID})
		l.rewardVoter(userID)
	}
	return result, nil
}

// Remove deletes the user's reaction if present and gives back the counter
// contribution it made. Removing an absent reaction is a no-op.
func (l *Ledger) Remove(ctx context.Context, kind string, targetID, userID uint) (Result, error) {
	spec, ok := targetSpecs[kind]
	if !ok {
		return Result{}, fmt.Errorf("%w: unknown target kind %q", errs.ErrValidation, kind)
	}

	var result Result
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target targetRow
		if err := tx.Table(spec.table).Select("id", "author_id").Where("id = ?", targetID).Take(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s %d", errs.ErrNotFound, kind, targetID)
			}
			return err
		}

		var existing db.Reaction
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("target_kind = ? AND target_id = ? AND user_id = ?", kind, targetID, userID).
			Take(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			count, err := readCount(tx, spec, targetID)
			if err != nil {
				return err
			}
			result = Result{Action: ActionUnchanged, NewCount: count}
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Delete(&db.Reaction{}, existing.ID).Error; err != nil {
			return err
		}
		expr := gorm.Expr(spec.column+" - ?", existing.Value)
		if !spec.signed {
			// Presence counters never go negative, even against repair edits.
			expr = gorm.Expr("GREATEST("+spec.column+" - ?, 0)", existing.Value)
		}
		if err := tx.Table(spec.table).
			Where("id = ?", targetID).
			UpdateColumn(spec.column, expr).Error; err != nil {
			return err
		}

		count, err := readCount(tx, spec, targetID)
		if err != nil {
			return err
		}
		result = Result{Action: ActionRemoved, NewCount: count}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

func readCount(tx *gorm.DB, spec targetSpec, targetID uint) (int, error) {
	var count int
	err := tx.Table(spec.table).Select(spec.column).Where("id = ?", targetID).Scan(&count).Error
	return count, err
}

// rewardVoter credits the small participation bonus for a first-time
// reaction, off the critical path. A failed credit is logged, never surfaced.
func (l *Ledger) rewardVoter(userID uint) {
	if l.points == nil || l.voteReward <= 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := l.points.Credit(ctx, userID, l.voteReward, "vote_reward"); err != nil {
			log.Printf("vote reward credit failed user=%d: %v", userID, err)
		}
	}()
}

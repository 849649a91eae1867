// Package pools implements group prediction pools: membership by invite
// code, host-authored prompts, member answers, host-triggered resolution,
// and the leaderboard read side. All coordination between concurrent
// requests goes through the shared store; conflicting writes are serialized
// with row locks and guarded updates, and every counter moves through a
// single increment expression.
package pools

import (
	"time"

	"couchclub/internal/notify"
	"couchclub/internal/points"

	"gorm.io/gorm"
)

type Service struct {
	db            *gorm.DB
	dispatcher    *notify.Dispatcher
	points        *points.Service
	codeAttempts  int
	defaultPoints int
	now           func() time.Time
}

func NewService(conn *gorm.DB, dispatcher *notify.Dispatcher, pointsSvc *points.Service, codeAttempts, defaultPoints int) *Service {
	if codeAttempts <= 0 {
		codeAttempts = 5
	}
	if defaultPoints <= 0 {
		defaultPoints = 10
	}
	return &Service{
		db:            conn,
		dispatcher:    dispatcher,
		points:        pointsSvc,
		codeAttempts:  codeAttempts,
		defaultPoints: defaultPoints,
		now:           timeNowUTC,
	}
}

func timeNowUTC() time.Time {
	return time.Now().UTC()
}

// Package notify delivers best-effort notifications. Dispatch runs off the
// caller's critical path: a failed insert is logged and dropped, never
// surfaced to the operation that triggered it.
package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"couchclub/internal/db"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const dispatchTimeout = 5 * time.Second

// TargetRef points a notification at the content it is about.
type TargetRef struct {
	Kind string `json:"kind"`
	ID   uint   `json:"id"`
}

func PoolRef(id uint) TargetRef   { return TargetRef{Kind: "pool", ID: id} }
func PromptRef(id uint) TargetRef { return TargetRef{Kind: "prompt", ID: id} }

type Dispatcher struct {
	db *gorm.DB
}

func NewDispatcher(conn *gorm.DB) *Dispatcher {
	return &Dispatcher{db: conn}
}

// Dispatch records a notification for the recipient in the background.
// Self-notifications are skipped.
func (d *Dispatcher) Dispatch(recipientID uint, eventType string, actorID uint, message string, ref TargetRef) {
	if recipientID == 0 || recipientID == actorID {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		payload, err := json.Marshal(ref)
		if err != nil {
			log.Printf("notification payload encode failed event=%s recipient=%d: %v", eventType, recipientID, err)
			return
		}
		record := db.Notification{
			RecipientID: recipientID,
			ActorID:     actorID,
			EventType:   eventType,
			Message:     message,
			Payload:     datatypes.JSON(payload),
		}
		if err := d.db.WithContext(ctx).Create(&record).Error; err != nil {
			log.Printf("notification dispatch failed event=%s recipient=%d: %v", eventType, recipientID, err)
		}
	}()
}

// List returns the user's notifications, newest first.
func (d *Dispatcher) List(ctx context.Context, userID uint, limit int) ([]db.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var rows []db.Notification
	err := d.db.WithContext(ctx).
		Where("recipient_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

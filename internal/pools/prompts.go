package pools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"couchclub/internal/db"
	"couchclub/internal/errs"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AddPromptInput struct {
	Text       string
	PromptType string
	Options    []string
	Points     int
	Deadline   *time.Time
}

// AddPrompt creates an open prompt in the pool. Host only; the pool must
// still be open.
func (s *Service) AddPrompt(ctx context.Context, hostID, poolID uint, input AddPromptInput) (*db.PoolPrompt, error) {
	pool, err := s.getPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if pool.HostID != hostID {
		return nil, fmt.Errorf("%w: only the host can add prompts", errs.ErrForbidden)
	}
	if pool.Status != db.PoolStatusOpen {
		return nil, fmt.Errorf("%w: pool is completed", errs.ErrInvalidState)
	}

	text, err := validatePromptText(input.Text)
	if err != nil {
		return nil, err
	}
	promptType := input.PromptType
	if promptType == "" {
		promptType = db.PromptTypePrediction
	}
	if promptType != db.PromptTypePrediction && promptType != db.PromptTypeMultiChoice {
		return nil, fmt.Errorf("%w: unknown prompt type %q", errs.ErrValidation, promptType)
	}
	options, err := validateOptions(promptType, input.Options)
	if err != nil {
		return nil, err
	}
	if input.Deadline != nil && input.Deadline.Before(s.now()) {
		return nil, fmt.Errorf("%w: deadline is in the past", errs.ErrValidation)
	}
	pointsValue := input.Points
	if pointsValue <= 0 {
		pointsValue = pool.PointsPerAnswer
	}

	prompt := db.PoolPrompt{
		PoolID:     poolID,
		CreatorID:  hostID,
		Text:       text,
		PromptType: promptType,
		Points:     pointsValue,
		Deadline:   input.Deadline,
		Status:     db.PromptStatusOpen,
	}
	if len(options) > 0 {
		encoded, err := json.Marshal(options)
		if err != nil {
			return nil, err
		}
		prompt.Options = datatypes.JSON(encoded)
	}
	if err := s.db.WithContext(ctx).Create(&prompt).Error; err != nil {
		return nil, err
	}
	log.Printf("prompt added pool_id=%d prompt_id=%d type=%s points=%d", poolID, prompt.ID, promptType, pointsValue)
	return &prompt, nil
}

// SubmitAnswer records or overwrites the member's answer while the prompt is
// open. The prompt row is share-locked for the duration of the write, so a
// concurrent resolution either waits for this answer (and grades it) or has
// already flipped the status (and this call fails Closed). Resubmission is an
// upsert on the (prompt, user) pair, not an append.
func (s *Service) SubmitAnswer(ctx context.Context, userID, promptID uint, answerText string) (*db.PoolAnswer, error) {
	text, err := validateAnswerText(answerText)
	if err != nil {
		return nil, err
	}

	var answer db.PoolAnswer
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prompt db.PoolPrompt
		if err := tx.Clauses(clause.Locking{Strength: "SHARE"}).Take(&prompt, promptID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: prompt %d", errs.ErrNotFound, promptID)
			}
			return err
		}
		if closed, reason := promptClosed(&prompt, s.now()); closed {
			return fmt.Errorf("%w: %s", errs.ErrClosed, reason)
		}

		var memberCount int64
		if err := tx.Model(&db.PoolMember{}).
			Where("pool_id = ? AND user_id = ?", prompt.PoolID, userID).
			Count(&memberCount).Error; err != nil {
			return err
		}
		if memberCount == 0 {
			return fmt.Errorf("%w: join the pool before answering", errs.ErrForbidden)
		}

		answer = db.PoolAnswer{PromptID: promptID, UserID: userID, Text: text}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "prompt_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{"text": text, "updated_at": s.now()}),
		}).Create(&answer).Error
	})
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// promptClosed reports whether the prompt stopped accepting answers, with a
// reason for the error message. The deadline closes a prompt even before its
// status flips.
func promptClosed(prompt *db.PoolPrompt, now time.Time) (bool, string) {
	if prompt.Status != db.PromptStatusOpen {
		return true, "prompt is resolved"
	}
	if prompt.Deadline != nil && now.After(*prompt.Deadline) {
		return true, "deadline has passed"
	}
	return false, ""
}

// PromptView is a prompt with the caller's own answer attached, and the
// correct answer once resolved.
type PromptView struct {
	Prompt   db.PoolPrompt  `json:"prompt"`
	MyAnswer *db.PoolAnswer `json:"my_answer,omitempty"`
}

// ListPrompts returns the pool's prompts oldest first, each with the
// caller's answer when present. Membership or a public pool is required.
func (s *Service) ListPrompts(ctx context.Context, requesterID, poolID uint) ([]PromptView, error) {
	pool, err := s.getPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	member, err := s.isMember(ctx, poolID, requesterID)
	if err != nil {
		return nil, err
	}
	if !member && pool.Visibility != db.PoolVisibilityPublic {
		return nil, fmt.Errorf("%w: pool is private", errs.ErrForbidden)
	}

	var prompts []db.PoolPrompt
	if err := s.db.WithContext(ctx).
		Where("pool_id = ?", poolID).
		Order("created_at ASC, id ASC").
		Find(&prompts).Error; err != nil {
		return nil, err
	}
	if len(prompts) == 0 {
		return []PromptView{}, nil
	}

	promptIDs := make([]uint, 0, len(prompts))
	for _, prompt := range prompts {
		promptIDs = append(promptIDs, prompt.ID)
	}
	var mine []db.PoolAnswer
	if err := s.db.WithContext(ctx).
		Where("prompt_id IN ? AND user_id = ?", promptIDs, requesterID).
		Find(&mine).Error; err != nil {
		return nil, err
	}
	byPrompt := make(map[uint]*db.PoolAnswer, len(mine))
	for i := range mine {
		byPrompt[mine[i].PromptID] = &mine[i]
	}

	views := make([]PromptView, 0, len(prompts))
	for _, prompt := range prompts {
		if prompt.Status == db.PromptStatusOpen {
			// The correct answer stays hidden until resolution.
			prompt.CorrectAnswer = nil
		}
		views = append(views, PromptView{Prompt: prompt, MyAnswer: byPrompt[prompt.ID]})
	}
	return views, nil
}

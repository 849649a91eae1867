package pools

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"couchclub/internal/db"
	"couchclub/internal/errs"
	"couchclub/internal/notify"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ResolveSummary reports what a resolution did.
type ResolveSummary struct {
	TotalAnswers  int `json:"total_answers"`
	Winners       int `json:"winners"`
	PointsAwarded int `json:"points_awarded"`
}

// normalizeAnswer makes grading insensitive to case and surrounding or
// repeated whitespace.
func normalizeAnswer(text string) string {
	return strings.ToLower(normalizeText(text))
}

// gradeAnswer marks one answer against the normalized correct answer and
// returns the points it earns.
func gradeAnswer(answerText, normalizedCorrect string, pointsValue int) (bool, int) {
	if normalizeAnswer(answerText) == normalizedCorrect {
		return true, pointsValue
	}
	return false, 0
}

// Resolve flips a prompt from open to resolved, grades every answer against
// the declared correct answer, and credits winners. The status flip is the
// first write and is guarded on status = open, so resolution happens exactly
// once: a retry or a concurrent resolve gets AlreadyResolved and never
// re-grades or re-credits. Per-answer grading failures are logged and
// skipped, never propagated, so one bad row cannot block the rest.
func (s *Service) Resolve(ctx context.Context, hostID, promptID uint, correctAnswer string) (ResolveSummary, error) {
	normalizedCorrect := normalizeAnswer(correctAnswer)
	if normalizedCorrect == "" {
		return ResolveSummary{}, fmt.Errorf("%w: correct answer is required", errs.ErrValidation)
	}

	var (
		summary ResolveSummary
		pool    db.Pool
		winners []db.PoolAnswer
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prompt db.PoolPrompt
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&prompt, promptID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: prompt %d", errs.ErrNotFound, promptID)
			}
			return err
		}
		if err := tx.Take(&pool, prompt.PoolID).Error; err != nil {
			return err
		}
		if pool.HostID != hostID {
			return fmt.Errorf("%w: only the host can resolve prompts", errs.ErrForbidden)
		}
		if prompt.Status != db.PromptStatusOpen {
			return fmt.Errorf("%w: prompt %d", errs.ErrAlreadyResolved, promptID)
		}

		resolvedAt := s.now()
		flip := tx.Model(&db.PoolPrompt{}).
			Where("id = ? AND status = ?", promptID, db.PromptStatusOpen).
			Updates(map[string]any{
				"status":         db.PromptStatusResolved,
				"correct_answer": normalizedCorrect,
				"resolved_at":    resolvedAt,
			})
		if flip.Error != nil {
			return flip.Error
		}
		if flip.RowsAffected == 0 {
			return fmt.Errorf("%w: prompt %d", errs.ErrAlreadyResolved, promptID)
		}

		var answers []db.PoolAnswer
		if err := tx.Where("prompt_id = ?", promptID).Order("id ASC").Find(&answers).Error; err != nil {
			return err
		}

		summary.TotalAnswers = len(answers)
		for _, answer := range answers {
			isCorrect, earned := gradeAnswer(answer.Text, normalizedCorrect, prompt.Points)
			if err := tx.Model(&db.PoolAnswer{}).
				Where("id = ?", answer.ID).
				Updates(map[string]any{"is_correct": isCorrect, "points_earned": earned}).Error; err != nil {
				log.Printf("answer grading failed prompt_id=%d answer_id=%d: %v", promptID, answer.ID, err)
				continue
			}
			if !isCorrect {
				continue
			}
			result := tx.Model(&db.PoolMember{}).
				Where("pool_id = ? AND user_id = ?", prompt.PoolID, answer.UserID).
				UpdateColumn("points", gorm.Expr("points + ?", earned))
			if result.Error != nil {
				log.Printf("member credit failed prompt_id=%d user_id=%d: %v", promptID, answer.UserID, result.Error)
				continue
			}
			summary.Winners++
			summary.PointsAwarded += earned
			answer.IsCorrect = &isCorrect
			answer.PointsEarned = earned
			winners = append(winners, answer)
		}
		return nil
	})
	if err != nil {
		return ResolveSummary{}, err
	}

	log.Printf("prompt resolved prompt_id=%d answers=%d winners=%d points=%d",
		promptID, summary.TotalAnswers, summary.Winners, summary.PointsAwarded)
	s.creditWinners(winners, promptID)
	return summary, nil
}

// creditWinners moves each winner's global balance and notifies them, after
// the resolution transaction has committed. Both are best effort: a failure
// is logged for repair, never surfaced to the host.
func (s *Service) creditWinners(winners []db.PoolAnswer, promptID uint) {
	for _, answer := range winners {
		if s.points != nil {
			if err := s.points.Credit(context.Background(), answer.UserID, answer.PointsEarned, "pool_prompt_win"); err != nil {
				log.Printf("global credit failed prompt_id=%d user_id=%d amount=%d: %v",
					promptID, answer.UserID, answer.PointsEarned, err)
			}
		}
		s.dispatcher.Dispatch(answer.UserID, "prompt_won", 0,
			fmt.Sprintf("you won %d points", answer.PointsEarned), notify.PromptRef(promptID))
	}
}

package pools

import (
	"errors"
	"testing"
	"time"

	"couchclub/internal/db"
	"couchclub/internal/errs"
)

func TestPromptClosedByDeadlineBeforeStatusFlip(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	prompt := &db.PoolPrompt{Status: db.PromptStatusOpen, Deadline: &deadline}

	closed, _ := promptClosed(prompt, deadline.Add(-time.Minute))
	if closed {
		t.Fatalf("prompt should accept answers before the deadline")
	}
	closed, reason := promptClosed(prompt, deadline.Add(time.Second))
	if !closed || reason != "deadline has passed" {
		t.Fatalf("expected deadline to close the prompt, got closed=%t reason=%q", closed, reason)
	}
}

func TestPromptClosedByStatus(t *testing.T) {
	prompt := &db.PoolPrompt{Status: db.PromptStatusResolved}
	closed, reason := promptClosed(prompt, time.Now())
	if !closed || reason != "prompt is resolved" {
		t.Fatalf("resolved prompt must be closed, got closed=%t reason=%q", closed, reason)
	}
}

func TestPromptOpenWithoutDeadline(t *testing.T) {
	prompt := &db.PoolPrompt{Status: db.PromptStatusOpen}
	if closed, _ := promptClosed(prompt, time.Now().Add(24*time.Hour)); closed {
		t.Fatalf("prompt without a deadline must stay open until resolved")
	}
}

func TestValidateOptions(t *testing.T) {
	if _, err := validateOptions(db.PromptTypeMultiChoice, []string{"only one"}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error for a single option, got %v", err)
	}
	if _, err := validateOptions(db.PromptTypePrediction, []string{"a", "b"}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error for options on a prediction prompt, got %v", err)
	}
	options, err := validateOptions(db.PromptTypeMultiChoice, []string{" Yes ", "No"})
	if err != nil {
		t.Fatalf("validateOptions: %v", err)
	}
	if options[0] != "Yes" || options[1] != "No" {
		t.Fatalf("options not normalized: %#v", options)
	}
}

func TestValidateVisibility(t *testing.T) {
	visibility, err := validateVisibility("")
	if err != nil || visibility != db.PoolVisibilityPrivate {
		t.Fatalf("empty visibility should default to private, got %q err=%v", visibility, err)
	}
	if _, err := validateVisibility("friends-only"); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

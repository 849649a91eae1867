package pools

import (
	"fmt"
	"strings"

	"couchclub/internal/db"
	"couchclub/internal/errs"
)

const (
	maxPoolNameLength   = 120
	maxDescriptionLen   = 500
	maxPromptTextLength = 280
	maxAnswerLength     = 280
	maxOptionLength     = 140
	maxOptionsPerPrompt = 10
)

func validatePoolName(name string) (string, error) {
	return validateText("pool name", name, maxPoolNameLength)
}

func validatePromptText(text string) (string, error) {
	return validateText("prompt text", text, maxPromptTextLength)
}

func validateAnswerText(text string) (string, error) {
	return validateText("answer", text, maxAnswerLength)
}

func validateDescription(text string) (string, error) {
	trimmed := normalizeText(text)
	if len(trimmed) > maxDescriptionLen {
		return "", fmt.Errorf("%w: description must be %d characters or fewer", errs.ErrValidation, maxDescriptionLen)
	}
	return trimmed, nil
}

func validateVisibility(visibility string) (string, error) {
	switch visibility {
	case "":
		return db.PoolVisibilityPrivate, nil
	case db.PoolVisibilityPublic, db.PoolVisibilityPrivate:
		return visibility, nil
	default:
		return "", fmt.Errorf("%w: visibility must be public or private", errs.ErrValidation)
	}
}

func validateOptions(promptType string, options []string) ([]string, error) {
	if promptType != db.PromptTypeMultiChoice {
		if len(options) > 0 {
			return nil, fmt.Errorf("%w: options are only valid for multi-choice prompts", errs.ErrValidation)
		}
		return nil, nil
	}
	if len(options) < 2 {
		return nil, fmt.Errorf("%w: multi-choice prompts need at least 2 options", errs.ErrValidation)
	}
	if len(options) > maxOptionsPerPrompt {
		return nil, fmt.Errorf("%w: at most %d options per prompt", errs.ErrValidation, maxOptionsPerPrompt)
	}
	cleaned := make([]string, 0, len(options))
	for _, option := range options {
		value, err := validateText("option", option, maxOptionLength)
		if err != nil {
			return nil, err
		}
		cleaned = append(cleaned, value)
	}
	return cleaned, nil
}

func validateText(label, text string, maxLen int) (string, error) {
	trimmed := normalizeText(text)
	if trimmed == "" {
		return "", fmt.Errorf("%w: %s is required", errs.ErrValidation, label)
	}
	if len(trimmed) > maxLen {
		return "", fmt.Errorf("%w: %s must be %d characters or fewer", errs.ErrValidation, label, maxLen)
	}
	return trimmed, nil
}

func normalizeText(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	return strings.Join(fields, " ")
}

package validator

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/onlinecourse-service/internal/errors"
	"github.com/SAP-F-2025/onlinecourse-service/internal/models"
)

const (
	maxQuestionTextLength = 500
	maxChoiceTextLength   = 200
)

// QuestionValidator checks exam content before it is stored
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateQuestion checks text, grade and choices of one question
func (v *QuestionValidator) ValidateQuestion(question *models.Question) error {
	if strings.TrimSpace(question.Text) == "" {
		return fmt.Errorf("question text is required")
	}
	if len(question.Text) > maxQuestionTextLength {
		return fmt.Errorf("question text must be at most %d characters", maxQuestionTextLength)
	}
	if question.Grade < 0 {
		return fmt.Errorf("question grade must not be negative")
	}
	if len(question.Choices) == 0 {
		return fmt.Errorf("question must have at least 1 choice")
	}

	for i, choice := range question.Choices {
		if strings.TrimSpace(choice.Text) == "" {
			return fmt.Errorf("choice %d: text cannot be empty", i+1)
		}
		if len(choice.Text) > maxChoiceTextLength {
			return fmt.Errorf("choice %d: text must be at most %d characters", i+1, maxChoiceTextLength)
		}
	}

	return nil
}

// ValidateBatch validates every question and reports each failure by position
func (v *QuestionValidator) ValidateBatch(questions []models.Question) error {
	var errs errors.ValidationErrors
	for i := range questions {
		if err := v.ValidateQuestion(&questions[i]); err != nil {
			errs = append(errs, *errors.NewValidationError(
				fmt.Sprintf("questions[%d]", i), err.Error(), questions[i].Text))
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

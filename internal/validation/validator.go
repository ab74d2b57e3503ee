package validation

import (
	"strings"
	"unicode/utf8"

	"quiz-practice/internal/domain"
)

const (
	maxCategoryLength   = 64
	maxQuestionIDLength = 64
	maxUserAnswerLength = 64
)

// Validator checks request input against the configured categories and
// count limits.
type Validator struct {
	categories []string
	maxCount   int
}

func NewValidator(categories []string, maxCount int) *Validator {
	return &Validator{categories: categories, maxCount: maxCount}
}

// ValidateGenerateRequest requires a configured category and a count in
// [1, maxCount].
func (v *Validator) ValidateGenerateRequest(category string, count int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if errs := v.ValidateCategory(category); len(errs) > 0 {
		errors = append(errors, errs...)
	}
	if count < 1 || count > v.maxCount {
		errors = append(errors, domain.NewOutOfRangeError("count", count, 1, v.maxCount))
	}

	return errors
}

// ValidateCategory requires category to be one of the configured set.
func (v *Validator) ValidateCategory(category string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(category) == "" {
		errors = append(errors, domain.NewMissingFieldError("category"))
		return errors
	}
	if !v.isCategory(category) {
		errors = append(errors, domain.NewInvalidFormatError("category", category))
	}

	return errors
}

// ValidateCategoryFilter accepts an empty filter (all categories). Unknown
// categories are allowed and simply match nothing.
func (v *Validator) ValidateCategoryFilter(category string) domain.ValidationErrors {
	if utf8.RuneCountInString(category) > maxCategoryLength {
		return domain.ValidationErrors{
			domain.NewOutOfRangeError("category", utf8.RuneCountInString(category), 0, maxCategoryLength),
		}
	}
	return nil
}

// ValidateAnswerRequest checks presence and size only. Whether the question
// exists is decided by the store, and any answer text is graded as given.
func (v *Validator) ValidateAnswerRequest(questionID, userAnswer string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(questionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("questionId"))
	} else if len(questionID) > maxQuestionIDLength {
		errors = append(errors, domain.NewOutOfRangeError("questionId", len(questionID), 1, maxQuestionIDLength))
	}

	if strings.TrimSpace(userAnswer) == "" {
		errors = append(errors, domain.NewMissingFieldError("userAnswer"))
	} else if utf8.RuneCountInString(userAnswer) > maxUserAnswerLength {
		errors = append(errors, domain.NewOutOfRangeError("userAnswer", utf8.RuneCountInString(userAnswer), 1, maxUserAnswerLength))
	}

	return errors
}

// ValidateQuestion checks a manually entered question, including that its
// category is configured.
func (v *Validator) ValidateQuestion(q *domain.Question) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if err := q.Validate(); err != nil {
		if verrs, ok := err.(domain.ValidationErrors); ok {
			errors = append(errors, verrs...)
		}
	}
	if strings.TrimSpace(q.Category) != "" && !v.isCategory(q.Category) {
		errors = append(errors, domain.NewInvalidFormatError("category", q.Category))
	}

	return errors
}

func (v *Validator) isCategory(name string) bool {
	for _, c := range v.categories {
		if c == name {
			return true
		}
	}
	return false
}

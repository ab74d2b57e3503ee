package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// OptionCount is the number of answer options every validated question has.
const OptionCount = 4

// MaxCategoryLength is the longest category, in characters, a question
// can be stored under.
const MaxCategoryLength = 256

// AnswerSymbols is the fixed alphabet an answer is expressed in.
var AnswerSymbols = []string{"a", "b", "c", "d"}

// IsAnswerSymbol reports whether s is one of AnswerSymbols.
func IsAnswerSymbol(s string) bool {
	for _, symbol := range AnswerSymbols {
		if s == symbol {
			return true
		}
	}
	return false
}

// Question is a multiple-choice practice question.
type Question struct {
	ID          string
	Content     string
	Options     []string
	Answer      string
	Explanation string
	Category    string
	Answered    bool
	CreatedAt   time.Time
}

// NewQuestion builds an unsaved question. ID and CreatedAt are assigned by
// the repository.
func NewQuestion(content string, options []string, answer, explanation, category string) *Question {
	return &Question{
		Content:     content,
		Options:     options,
		Answer:      answer,
		Explanation: explanation,
		Category:    category,
	}
}

// TruncateCategory cuts category to MaxCategoryLength characters.
func TruncateCategory(category string) string {
	if utf8.RuneCountInString(category) <= MaxCategoryLength {
		return category
	}
	return string([]rune(category)[:MaxCategoryLength])
}

// Validate checks the fields a manually created question must carry.
func (q *Question) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(q.Content) == "" {
		errs = append(errs, NewMissingFieldError("content"))
	}
	if len(q.Options) != OptionCount {
		errs = append(errs, NewOutOfRangeError("options", len(q.Options), OptionCount, OptionCount))
	}
	if !IsAnswerSymbol(q.Answer) {
		errs = append(errs, NewInvalidFormatError("answer", q.Answer))
	}
	if strings.TrimSpace(q.Category) == "" {
		errs = append(errs, NewMissingFieldError("category"))
	} else if n := utf8.RuneCountInString(q.Category); n > MaxCategoryLength {
		errs = append(errs, NewOutOfRangeError("category", n, 1, MaxCategoryLength))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Record is the immutable log entry of one submitted answer.
type Record struct {
	ID         string
	QuestionID string
	UserAnswer string
	IsCorrect  bool
	AnsweredAt time.Time
}

// NewRecord grades userAnswer against question. IsCorrect is fixed here and
// never recomputed. ID and AnsweredAt are assigned by the repository.
func NewRecord(question *Question, userAnswer string) *Record {
	return &Record{
		QuestionID: question.ID,
		UserAnswer: userAnswer,
		IsCorrect:  userAnswer == question.Answer,
	}
}

// RecordWithQuestion is a record joined with the question it answers.
type RecordWithQuestion struct {
	Record   *Record
	Question *Question
}

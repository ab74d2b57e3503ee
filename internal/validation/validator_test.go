package validation

import (
	"strings"
	"testing"

	"quiz-practice/internal/domain"

	"github.com/stretchr/testify/assert"
)

func newTestValidator() *Validator {
	return NewValidator([]string{"技術", "管理", "其他"}, 50)
}

func TestValidateGenerateRequest(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name     string
		category string
		count    int
		fields   []string
	}{
		{name: "valid", category: "技術", count: 15},
		{name: "upper bound", category: "其他", count: 50},
		{name: "missing category", category: " ", count: 15, fields: []string{"category"}},
		{name: "unknown category", category: "行銷", count: 15, fields: []string{"category"}},
		{name: "zero count", category: "管理", count: 0, fields: []string{"count"}},
		{name: "too many", category: "管理", count: 51, fields: []string{"count"}},
		{name: "both wrong", category: "", count: -1, fields: []string{"category", "count"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateGenerateRequest(tt.category, tt.count)
			var fields []string
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestValidateAnswerRequest(t *testing.T) {
	v := newTestValidator()

	assert.Empty(t, v.ValidateAnswerRequest("01ARZ3NDEKTSV4RRFFQ69G5FAV", "a"))
	assert.Empty(t, v.ValidateAnswerRequest("clx0abc123", "b"), "ids from other generators are looked up, not rejected")

	errs := v.ValidateAnswerRequest("", "")
	assert.Len(t, errs, 2)
	assert.Equal(t, domain.CodeMissingField, errs[0].Code)

	errs = v.ValidateAnswerRequest("01Q", strings.Repeat("答", 65))
	assert.Len(t, errs, 1)
	assert.Equal(t, domain.CodeOutOfRange, errs[0].Code)
}

func TestValidateCategoryFilter(t *testing.T) {
	v := newTestValidator()
	assert.Empty(t, v.ValidateCategoryFilter(""))
	assert.Empty(t, v.ValidateCategoryFilter("行銷"))
	assert.Len(t, v.ValidateCategoryFilter(strings.Repeat("x", 65)), 1)
}

func TestValidateQuestion(t *testing.T) {
	v := newTestValidator()

	ok := domain.NewQuestion("Q", []string{"1", "2", "3", "4"}, "a", "", "技術")
	assert.Empty(t, v.ValidateQuestion(ok))

	bad := domain.NewQuestion("", []string{"1", "2"}, "z", "", "行銷")
	errs := v.ValidateQuestion(bad)
	var fields []string
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"content", "options", "answer", "category"}, fields)
}

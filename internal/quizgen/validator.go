package quizgen

import (
	"strings"

	"quiz-practice/internal/domain"
)

// ValidationStats reports how many candidates survived FilterCandidates.
type ValidationStats struct {
	Considered int
	Accepted   int
	Dropped    int
}

// FilterCandidates keeps the candidates whose options field is an array of
// exactly four entries. Every other field is passed through unchecked.
func FilterCandidates(candidates []domain.Candidate) ([]domain.Candidate, ValidationStats) {
	accepted := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if options, ok := c.Options(); ok && len(options) == domain.OptionCount {
			accepted = append(accepted, c)
		}
	}
	return accepted, ValidationStats{
		Considered: len(candidates),
		Accepted:   len(accepted),
		Dropped:    len(candidates) - len(accepted),
	}
}

// ToQuestion converts an accepted candidate into an unsaved question. When
// the model left category empty the requested category is used. Categories
// longer than domain.MaxCategoryLength are truncated.
func ToQuestion(c domain.Candidate, requestedCategory string) *domain.Question {
	rawOptions, _ := c.Options()
	options := make([]string, len(rawOptions))
	for i, o := range rawOptions {
		options[i] = domain.StringifyJSONValue(o)
	}

	category := c.Text("category")
	if strings.TrimSpace(category) == "" {
		category = requestedCategory
	}
	category = domain.TruncateCategory(category)

	return domain.NewQuestion(c.Text("content"), options, c.Text("answer"), c.Text("explanation"), category)
}

package quizgen

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"quiz-practice/internal/domain"
)

// ParseReason explains why Parse produced what it did.
type ParseReason string

const (
	ParseOK           ParseReason = "ok"
	ParseNoJSONRegion ParseReason = "no_json_region"
	ParseInvalidJSON  ParseReason = "invalid_json"
	ParseNotArray     ParseReason = "not_array"
)

const (
	fenceOpen  = "```json"
	fenceClose = "```"
)

// ParseCandidates recovers the question objects from raw model output. It
// never fails: anything unusable yields an empty, non-nil slice.
func ParseCandidates(raw string) []domain.Candidate {
	candidates, _ := Parse(raw)
	return candidates
}

// Parse is ParseCandidates with the reason attached, for logging.
func Parse(raw string) ([]domain.Candidate, ParseReason) {
	region, ok := jsonRegion(stripFence(raw))
	if !ok {
		return []domain.Candidate{}, ParseNoJSONRegion
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(stripControlChars(region))))
	dec.UseNumber()

	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return []domain.Candidate{}, ParseInvalidJSON
	}
	if _, err := dec.Token(); err != io.EOF {
		return []domain.Candidate{}, ParseInvalidJSON
	}

	items, isArray := decoded.([]any)
	if !isArray {
		return []domain.Candidate{}, ParseNotArray
	}

	candidates := make([]domain.Candidate, 0, len(items))
	for _, item := range items {
		if obj, isObject := item.(map[string]any); isObject {
			candidates = append(candidates, domain.Candidate(obj))
		}
	}
	return candidates, ParseOK
}

func stripFence(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, fenceOpen)
	text = strings.TrimSuffix(text, fenceClose)
	return text
}

// jsonRegion cuts text from the earliest '[' or '{' to the latest ']' or '}'.
func jsonRegion(text string) (string, bool) {
	start := earliest(strings.IndexByte(text, '['), strings.IndexByte(text, '{'))
	end := max(strings.LastIndexByte(text, ']'), strings.LastIndexByte(text, '}'))
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

func earliest(a, b int) int {
	switch {
	case a == -1:
		return b
	case b == -1:
		return a
	default:
		return min(a, b)
	}
}

// stripControlChars drops ASCII control characters except \t, \n and \r.
func stripControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r <= 0x08, r == 0x0B, r == 0x0C, r >= 0x0E && r <= 0x1F, r == 0x7F:
			return -1
		default:
			return r
		}
	}, s)
}

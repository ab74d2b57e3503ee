package models

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"time"

	"quiz-practice/internal/domain"
)

// Options is the JSON-encoded options column. Reads never fail: whatever is
// stored is normalized to a list of strings.
type Options []string

// Value stores the options as a JSON array; nil becomes "[]".
func (o Options) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(o))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner using NormalizeOptions.
func (o *Options) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*o = Options{}
	case []byte:
		*o = NormalizeOptions(v)
	case string:
		*o = NormalizeOptions([]byte(v))
	case fmt.Stringer:
		*o = NormalizeOptions([]byte(v.String()))
	default:
		*o = Options{}
	}
	return nil
}

// NormalizeOptions turns stored options text into a list of strings.
//   - a JSON array yields its elements, non-strings in compact JSON form
//   - a JSON object yields its values with array-index keys ("0", "1", ...)
//     first in ascending numeric order, then the other keys in document order
//   - anything else, including malformed JSON, yields an empty list
func NormalizeOptions(raw []byte) Options {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Options{}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return Options{}
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return Options{}
	}

	out := Options{}
	switch delim {
	case '[':
		for dec.More() {
			var v any
			if err := dec.Decode(&v); err != nil {
				return Options{}
			}
			out = append(out, domain.StringifyJSONValue(v))
		}
	case '{':
		var fields []objectField
		seen := map[string]int{}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return Options{}
			}
			key, _ := tok.(string)
			var v any
			if err := dec.Decode(&v); err != nil {
				return Options{}
			}
			// a repeated key keeps its first position and its last value
			if i, ok := seen[key]; ok {
				fields[i].value = v
				continue
			}
			seen[key] = len(fields)
			fields = append(fields, objectField{key: key, value: v})
		}
		sortObjectFields(fields)
		for _, f := range fields {
			out = append(out, domain.StringifyJSONValue(f.value))
		}
	default:
		return Options{}
	}

	// closing delimiter, then nothing but whitespace
	if _, err := dec.Token(); err != nil {
		return Options{}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Options{}
	}
	return out
}

type objectField struct {
	key   string
	value any
}

// sortObjectFields orders fields the way JavaScript enumerates object
// properties.
func sortObjectFields(fields []objectField) {
	sort.SliceStable(fields, func(i, j int) bool {
		ni, iIndex := arrayIndex(fields[i].key)
		nj, jIndex := arrayIndex(fields[j].key)
		if iIndex && jIndex {
			return ni < nj
		}
		return iIndex && !jIndex
	})
}

// arrayIndex reports whether key is a canonical decimal integer below
// 2^32-1.
func arrayIndex(key string) (uint64, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == math.MaxUint32 {
		return 0, false
	}
	return n, true
}

// Question maps the questions table. Nullable text columns use
// sql.NullString because Oracle stores '' as NULL.
type Question struct {
	ID          string         `db:"id"`
	Content     sql.NullString `db:"content"`
	Options     Options        `db:"options"`
	Answer      sql.NullString `db:"answer"`
	Explanation sql.NullString `db:"explanation"`
	Category    string         `db:"category"`
	Answered    int            `db:"answered"`
	CreatedAt   time.Time      `db:"created_at"`
}

// Record maps the records table.
type Record struct {
	ID         string         `db:"id"`
	QuestionID string         `db:"question_id"`
	UserAnswer sql.NullString `db:"user_answer"`
	IsCorrect  int            `db:"is_correct"`
	AnsweredAt time.Time      `db:"answered_at"`
}

// RecordWithQuestion is one row of the history join.
type RecordWithQuestion struct {
	RecordID            string         `db:"record_id"`
	UserAnswer          sql.NullString `db:"user_answer"`
	IsCorrect           int            `db:"is_correct"`
	AnsweredAt          time.Time      `db:"answered_at"`
	QuestionID          string         `db:"question_id"`
	QuestionContent     sql.NullString `db:"content"`
	QuestionOptions     Options        `db:"options"`
	QuestionAnswer      sql.NullString `db:"answer"`
	QuestionExplanation sql.NullString `db:"explanation"`
	QuestionCategory    string         `db:"category"`
	QuestionAnswered    int            `db:"answered"`
	QuestionCreatedAt   time.Time      `db:"created_at"`
}

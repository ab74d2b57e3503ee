package util

import (
	"github.com/oklog/ulid/v2"
)

// NewULID returns a new identifier. IDs sort by creation time and are
// monotonic within a millisecond. Safe for concurrent use.
func NewULID() string {
	return ulid.Make().String()
}

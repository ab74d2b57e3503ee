package util

import (
	"database/sql"
)

// StringToNullString converts a string to sql.NullString.
// An empty string is treated as NULL, matching how Oracle stores ''.
func StringToNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// BoolToInt maps a bool onto the 0/1 flag columns.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

//go:build godror

package database

// The godror driver needs cgo and the Oracle client libraries, so it is
// only linked into builds tagged "godror".
import _ "github.com/godror/godror"

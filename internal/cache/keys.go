package cache

import "strings"

const (
	GlobalKeyPrefix = "quizpractice"
)

// GenerateCacheKey builds "<prefix>:<service>:<objectType>:<identifier>".
// Optional params are joined by "_" and appended as a final segment.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

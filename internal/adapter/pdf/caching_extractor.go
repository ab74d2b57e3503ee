package pdf

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"quiz-practice/internal/cache"
	"quiz-practice/internal/domain"
	"quiz-practice/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CachingExtractor memoizes extracted text keyed by the SHA-256 of the
// document bytes, so editing the document invalidates its entry. Concurrent
// misses for the same document share one extraction.
type CachingExtractor struct {
	next  domain.TextExtractor
	cache domain.Cache
	ttl   time.Duration
	group singleflight.Group
}

// NewCachingExtractor returns next unchanged when c is nil.
func NewCachingExtractor(next domain.TextExtractor, c domain.Cache, ttl time.Duration) domain.TextExtractor {
	if c == nil {
		return next
	}
	return &CachingExtractor{next: next, cache: c, ttl: ttl}
}

func (e *CachingExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	key := textCacheKey(data)

	cached, err := e.cache.Get(ctx, key)
	switch {
	case err == nil:
		return cached, nil
	case errors.Is(err, domain.ErrCacheMiss):
	default:
		logger.Get().Warn("PDF text cache read failed", zap.String("key", key), zap.Error(err))
	}

	v, err, _ := e.group.Do(key, func() (interface{}, error) {
		text, err := e.next.Extract(ctx, data)
		if err != nil {
			return "", err
		}
		if err := e.cache.Set(ctx, key, text, e.ttl); err != nil {
			logger.Get().Warn("PDF text cache write failed", zap.String("key", key), zap.Error(err))
		}
		return text, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func textCacheKey(data []byte) string {
	sum := sha256.Sum256(data)
	return cache.GenerateCacheKey("pdf", "text", hex.EncodeToString(sum[:]))
}
